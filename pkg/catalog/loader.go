package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
)

// Columns is the CSV header understood by Load. Column order in the file is free.
var Columns = []string{
	"name", "price", "manufacturer", "type", "composition", "description", "sideEffects",
	"drugInteractions", "category", "dosageForm", "strength", "packageSize", "prescriptionRequired",
}

var requiredColumns = []string{"name", "price", "type", "category", "dosageForm", "strength"}

// Load reads a medicine CSV. Rows that cannot be parsed are skipped. When the
// file is unusable as a whole the embedded Default catalog is returned together
// with the reason.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), errors.New("no catalog path configured")
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Default(), fmt.Errorf("open medicine catalog: %w", err)
	}
	defer f.Close()

	medicines, skipped, err := parse(f)
	if err != nil {
		return Default(), fmt.Errorf("parse medicine catalog %s: %w", path, err)
	}
	if skipped > 0 {
		logger.Component("catalog").WithFields(map[string]interface{}{
			"path":    path,
			"skipped": skipped,
			"loaded":  len(medicines),
		}).Warn("Skipped malformed medicine rows")
	}
	if len(medicines) == 0 {
		return Default(), fmt.Errorf("medicine catalog %s has no valid rows", path)
	}
	return New(medicines), nil
}

// LoadOrDefault never fails; load problems are logged and the embedded
// catalog is used instead.
func LoadOrDefault(path string) *Catalog {
	cat, err := Load(path)
	if err != nil {
		logger.Component("catalog").WithError(err).WithField("medicines", cat.Len()).
			Warn("Using embedded medicine catalog")
		return cat
	}
	logger.Component("catalog").WithFields(map[string]interface{}{
		"path":      path,
		"medicines": cat.Len(),
	}).Info("Medicine catalog loaded")
	return cat
}

func parse(r io.Reader) ([]models.Medicine, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")
		index[strings.ToLower(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[strings.ToLower(col)]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		medicines []models.Medicine
		skipped   int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		if len(record) != len(header) {
			skipped++
			continue
		}
		m, ok := toMedicine(record, index)
		if !ok {
			skipped++
			continue
		}
		medicines = append(medicines, m)
	}
	return medicines, skipped, nil
}

func toMedicine(record []string, index map[string]int) (models.Medicine, bool) {
	field := func(name string) string {
		i, ok := index[strings.ToLower(name)]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return models.Medicine{}, false
	}
	price, err := parsePrice(field("price"))
	if err != nil {
		return models.Medicine{}, false
	}

	return models.Medicine{
		Name:                 name,
		Price:                price,
		Manufacturer:         field("manufacturer"),
		Type:                 field("type"),
		Composition:          field("composition"),
		Description:          field("description"),
		SideEffects:          field("sideEffects"),
		DrugInteractions:     field("drugInteractions"),
		Category:             field("category"),
		DosageForm:           field("dosageForm"),
		Strength:             field("strength"),
		PackageSize:          field("packageSize"),
		PrescriptionRequired: parseFlag(field("prescriptionRequired")),
	}, true
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(raw, "₹"), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %v", price)
	}
	return price, nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1", "rx":
		return true
	}
	return false
}
