package formulary

import (
	"strings"

	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/models"
)

const DefaultCategory = "general"

// Limits caps how many medicines a prescription gets per severity.
type Limits struct {
	Mild     int
	Moderate int
	Severe   int
}

func DefaultLimits() Limits {
	return Limits{Mild: 2, Moderate: 3, Severe: 4}
}

func (l Limits) For(severity models.Severity) int {
	switch severity {
	case models.SeveritySevere:
		return l.Severe
	case models.SeverityModerate:
		return l.Moderate
	default:
		return l.Mild
	}
}

// Selector picks candidate medicines for a diagnosed disease.
type Selector struct {
	catalog         *catalog.Catalog
	mapping         map[string][]string
	defaultCategory string
	limits          Limits
}

type Option func(*Selector)

func WithLimits(l Limits) Option {
	return func(s *Selector) { s.limits = l }
}

func WithDefaultCategory(category string) Option {
	return func(s *Selector) {
		if strings.TrimSpace(category) != "" {
			s.defaultCategory = category
		}
	}
}

// NewSelector copies mapping; disease names are matched case-insensitively.
func NewSelector(cat *catalog.Catalog, mapping map[string][]string, opts ...Option) *Selector {
	s := &Selector{
		catalog:         cat,
		mapping:         make(map[string][]string, len(mapping)),
		defaultCategory: DefaultCategory,
		limits:          DefaultLimits(),
	}
	for disease, categories := range mapping {
		s.mapping[strings.ToLower(strings.TrimSpace(disease))] = append([]string(nil), categories...)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns the medicine categories used for disease.
func (s *Selector) Categories(disease string) []string {
	if categories, ok := s.mapping[strings.ToLower(strings.TrimSpace(disease))]; ok && len(categories) > 0 {
		return append([]string(nil), categories...)
	}
	return []string{s.defaultCategory}
}

// Select concatenates the mapped categories in catalog order and truncates by
// severity. An empty result means there is nothing to prescribe.
func (s *Selector) Select(disease string, severity models.Severity) []models.Medicine {
	limit := s.limits.For(severity)
	if limit <= 0 {
		return []models.Medicine{}
	}

	seen := make(map[string]struct{})
	out := make([]models.Medicine, 0, limit)
	for _, category := range s.Categories(disease) {
		for _, m := range s.catalog.ByCategory(category) {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
