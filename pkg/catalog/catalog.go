package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mediconsult/platform/pkg/common/models"
)

var ErrNotFound = errors.New("medicine not found")

// Catalog is an immutable medicine list indexed by id and category. Readers
// receive copies so the backing slices never change after New.
type Catalog struct {
	medicines  []models.Medicine
	byID       map[string]int
	byCategory map[string][]int
}

func New(medicines []models.Medicine) *Catalog {
	c := &Catalog{
		medicines:  make([]models.Medicine, 0, len(medicines)),
		byID:       make(map[string]int, len(medicines)),
		byCategory: make(map[string][]int),
	}
	for _, m := range medicines {
		m.Category = normalizeCategory(m.Category)
		if m.ID == "" {
			m.ID = slug(m.Name + " " + m.Strength)
		}
		m.ID = c.uniqueID(m.ID)

		idx := len(c.medicines)
		c.medicines = append(c.medicines, m)
		c.byID[m.ID] = idx
		c.byCategory[m.Category] = append(c.byCategory[m.Category], idx)
	}
	return c
}

func (c *Catalog) uniqueID(id string) string {
	if id == "" {
		id = "medicine"
	}
	candidate := id
	for n := 2; ; n++ {
		if _, taken := c.byID[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.medicines)
}

// All returns every medicine in insertion order.
func (c *Catalog) All() []models.Medicine {
	if c == nil {
		return nil
	}
	return append([]models.Medicine(nil), c.medicines...)
}

func (c *Catalog) Get(id string) (models.Medicine, error) {
	if c == nil {
		return models.Medicine{}, ErrNotFound
	}
	idx, ok := c.byID[id]
	if !ok {
		return models.Medicine{}, ErrNotFound
	}
	return c.medicines[idx], nil
}

// Contains reports whether m is a catalog entry with identical id and name.
func (c *Catalog) Contains(m models.Medicine) bool {
	got, err := c.Get(m.ID)
	return err == nil && got.Name == m.Name
}

// ByCategory returns the medicines of one category in insertion order.
func (c *Catalog) ByCategory(category string) []models.Medicine {
	if c == nil {
		return nil
	}
	idxs := c.byCategory[normalizeCategory(category)]
	out := make([]models.Medicine, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, c.medicines[idx])
	}
	return out
}

func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(c.byCategory))
	var out []string
	for _, m := range c.medicines {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, m.Category)
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	category = strings.NewReplacer(" ", "_", "-", "_").Replace(category)
	if category == "" {
		return "general"
	}
	return category
}
