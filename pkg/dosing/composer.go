package dosing

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mediconsult/platform/pkg/common/models"
)

// Plan is the dosing advice for one medicine.
type Plan struct {
	Class        DrugClass `json:"class"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration"`
	Instructions string    `json:"instructions"`
	Timing       string    `json:"timing"`
	// DoseMg is zero when the dosage comes from the dosage form.
	DoseMg float64 `json:"dose_mg,omitempty"`
}

// Item wraps the plan into a prescription line.
func (p Plan) Item(m models.Medicine) models.PrescriptionItem {
	return models.PrescriptionItem{
		Medicine:     m,
		Dosage:       p.Dosage,
		Frequency:    p.Frequency,
		Duration:     p.Duration,
		Instructions: p.Instructions,
		Timing:       p.Timing,
	}
}

// Composer derives dosing plans. It is read-only after construction.
type Composer struct {
	overrides map[string]DrugClass
}

type Option func(*Composer)

// WithOverrides pins medicine ids to a class ahead of any other resolution.
func WithOverrides(overrides map[string]DrugClass) Option {
	return func(c *Composer) {
		for id, class := range overrides {
			c.overrides[id] = class
		}
	}
}

func NewComposer(opts ...Option) *Composer {
	c := &Composer{overrides: make(map[string]DrugClass)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves m to exactly one class: id override, course keyword in the
// name, catalog type, other name keyword, known ingredient, then general.
func (c *Composer) Classify(m models.Medicine) DrugClass {
	if c != nil {
		if class, ok := c.overrides[m.ID]; ok {
			return class
		}
	}
	name := words(m.Name)
	if class, ok := matchKeyword(name, courseKeywords); ok {
		return class
	}
	if class, ok := typeAliases[strings.ToLower(strings.TrimSpace(m.Type))]; ok {
		return class
	}
	if class, ok := matchKeyword(name, nameKeywords); ok {
		return class
	}
	if ing, ok := lookupIngredient(m.Composition + " " + m.Name); ok {
		return ing.Class
	}
	return ClassGeneral
}

func matchKeyword(name string, keywords []nameKeyword) (DrugClass, bool) {
	for _, kw := range keywords {
		if stem, ok := strings.CutSuffix(kw.keyword, "*"); ok {
			if strings.Contains(name, " "+stem) {
				return kw.class, true
			}
			continue
		}
		if strings.Contains(name, " "+kw.keyword+" ") || strings.Contains(name, " "+kw.keyword+"s ") {
			return kw.class, true
		}
	}
	return "", false
}

func (c *Composer) Compose(m models.Medicine, age int, severity models.Severity) Plan {
	class := c.Classify(m)
	rule := ruleFor(class)

	plan := Plan{
		Class:        class,
		Frequency:    rule.Frequency,
		Duration:     rule.Duration,
		Instructions: rule.Instructions,
		Timing:       rule.Timing,
	}

	if ing, ok := lookupIngredient(m.Composition + " " + m.Name); ok && !isExternal(class) {
		plan.DoseMg = scaledDose(ing, age, severity)
		plan.Dosage = formatMg(plan.DoseMg)
	} else {
		plan.Dosage = formDosage(m.DosageForm, class, age)
	}

	if age < 12 && isLiquid(m.DosageForm) {
		plan.Instructions += " Use the measuring cup provided."
	}
	if age > 65 {
		plan.Instructions += " Elderly patients should rise slowly and report dizziness."
	}
	return plan
}

func AgeFactor(age int) float64 {
	switch {
	case age < 12:
		return 0.5
	case age < 18:
		return 0.75
	case age > 65:
		return 0.8
	default:
		return 1.0
	}
}

func SeverityFactor(severity models.Severity) float64 {
	switch severity {
	case models.SeveritySevere:
		return 1.2
	case models.SeverityModerate:
		return 1.0
	default:
		return 0.8
	}
}

func scaledDose(ing Ingredient, age int, severity models.Severity) float64 {
	dose := ing.BaseMg * AgeFactor(age) * SeverityFactor(severity)
	if ing.MaxMg > 0 && dose > ing.MaxMg {
		dose = ing.MaxMg
	}
	return math.Round(dose*10) / 10
}

func formatMg(mg float64) string {
	return strconv.FormatFloat(mg, 'f', -1, 64) + " mg"
}

func formDosage(form string, class DrugClass, age int) string {
	form = strings.ToLower(form)
	switch {
	case class == ClassEyeDrops || strings.Contains(form, "drop"):
		return "1-2 drops"
	case class == ClassBronchodilator || strings.Contains(form, "inhaler"):
		return "2 puffs"
	case class == ClassTopical || strings.Contains(form, "gel") || strings.Contains(form, "cream") ||
		strings.Contains(form, "lotion") || strings.Contains(form, "ointment"):
		return "Apply a thin layer"
	case strings.Contains(form, "sachet"):
		return "1 sachet"
	case isLiquid(form):
		if age < 12 {
			return "2.5 ml"
		}
		return "5 ml"
	case strings.Contains(form, "injection") || strings.Contains(form, "vial"):
		return "1 vial"
	case strings.Contains(form, "capsule"):
		return "1 capsule"
	case strings.Contains(form, "tablet"):
		if age < 12 {
			return "Half tablet"
		}
		return "1 tablet"
	default:
		return "As directed"
	}
}

func isLiquid(form string) bool {
	form = strings.ToLower(form)
	return strings.Contains(form, "syrup") || strings.Contains(form, "suspension") || strings.Contains(form, "liquid")
}

func isExternal(class DrugClass) bool {
	return class == ClassTopical || class == ClassEyeDrops
}

// words lower-cases s and turns punctuation into spaces, padded on both sides
// so keywords can be matched as whole words.
func words(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte(' ')
	return b.String()
}
