package dosing

import "strings"

// DrugClass is the single behavioural class a medicine resolves to.
type DrugClass string

const (
	ClassAntibiotic       DrugClass = "antibiotic"
	ClassAntimalarial     DrugClass = "antimalarial"
	ClassAntipyretic      DrugClass = "antipyretic"
	ClassAnalgesic        DrugClass = "analgesic"
	ClassAntihistamine    DrugClass = "antihistamine"
	ClassCoughSyrup       DrugClass = "cough_syrup"
	ClassDecongestant     DrugClass = "decongestant"
	ClassBronchodilator   DrugClass = "bronchodilator"
	ClassAntacid          DrugClass = "antacid"
	ClassAntiemetic       DrugClass = "antiemetic"
	ClassRehydration      DrugClass = "rehydration"
	ClassLaxative         DrugClass = "laxative"
	ClassUrinary          DrugClass = "urinary_alkalizer"
	ClassAntidiabetic     DrugClass = "antidiabetic"
	ClassAntihypertensive DrugClass = "antihypertensive"
	ClassTopical          DrugClass = "topical"
	ClassEyeDrops         DrugClass = "eye_drops"
	ClassSupplement       DrugClass = "supplement"
	ClassGeneral          DrugClass = "general"
)

// ClassRule carries everything except the dose amount.
type ClassRule struct {
	Frequency    string
	Duration     string
	Instructions string
	Timing       string
}

// Ingredient is a known active ingredient with its adult single dose.
type Ingredient struct {
	Name   string
	Class  DrugClass
	BaseMg float64
	MaxMg  float64
}

var classRules = map[DrugClass]ClassRule{
	ClassAntibiotic: {
		Frequency:    "Every 8 hours",
		Duration:     "5-7 days",
		Instructions: "Complete the full course even if you feel better. Do not skip doses.",
		Timing:       "After meals",
	},
	ClassAntimalarial: {
		Frequency:    "Twice daily",
		Duration:     "3 days",
		Instructions: "Complete the full course. Take with milk or a fatty meal.",
		Timing:       "After meals",
	},
	ClassAntipyretic: {
		Frequency:    "Every 6 hours as needed",
		Duration:     "3 days",
		Instructions: "Take only when temperature is above 100°F. Do not exceed 4 doses in 24 hours.",
		Timing:       "After meals",
	},
	ClassAnalgesic: {
		Frequency:    "Twice daily",
		Duration:     "3-5 days",
		Instructions: "Take with food to avoid stomach upset. Stop if you notice acidity or black stools.",
		Timing:       "After meals",
	},
	ClassAntihistamine: {
		Frequency:    "Once daily",
		Duration:     "5 days",
		Instructions: "May cause drowsiness. Avoid driving and alcohol.",
		Timing:       "At bedtime",
	},
	ClassCoughSyrup: {
		Frequency:    "Three times daily",
		Duration:     "5 days",
		Instructions: "Shake well before use. Avoid cold drinks.",
		Timing:       "After meals",
	},
	ClassDecongestant: {
		Frequency:    "Twice daily",
		Duration:     "3-5 days",
		Instructions: "Do not use for more than 5 days. May cause drowsiness.",
		Timing:       "After meals",
	},
	ClassBronchodilator: {
		Frequency:    "As needed, up to 4 times daily",
		Duration:     "As directed",
		Instructions: "Shake the inhaler and breathe out fully before each puff. Seek care if relief lasts under 4 hours.",
		Timing:       "When breathless",
	},
	ClassAntacid: {
		Frequency:    "Once daily",
		Duration:     "14 days",
		Instructions: "Avoid spicy and oily food. Do not lie down right after eating.",
		Timing:       "30 minutes before breakfast",
	},
	ClassAntiemetic: {
		Frequency:    "Every 8 hours as needed",
		Duration:     "2-3 days",
		Instructions: "Sip fluids slowly after each dose.",
		Timing:       "Before meals",
	},
	ClassRehydration: {
		Frequency:    "After every loose stool",
		Duration:     "Until diarrhea stops",
		Instructions: "Dissolve one sachet in 1 litre of clean drinking water. Use within 24 hours.",
		Timing:       "Sip throughout the day",
	},
	ClassLaxative: {
		Frequency:    "Once daily",
		Duration:     "5-7 days",
		Instructions: "Drink plenty of water and eat fibre rich food.",
		Timing:       "At bedtime",
	},
	ClassUrinary: {
		Frequency:    "Three times daily",
		Duration:     "5 days",
		Instructions: "Dilute in a glass of water. Drink at least 3 litres of fluid a day.",
		Timing:       "After meals",
	},
	ClassAntidiabetic: {
		Frequency:    "Twice daily",
		Duration:     "Continue until review",
		Instructions: "Monitor blood sugar regularly. Do not stop without consulting your doctor.",
		Timing:       "With meals",
	},
	ClassAntihypertensive: {
		Frequency:    "Once daily",
		Duration:     "Continue until review",
		Instructions: "Check blood pressure daily. Reduce salt intake.",
		Timing:       "Same time every morning",
	},
	ClassTopical: {
		Frequency:    "Two to three times daily",
		Duration:     "7 days",
		Instructions: "Apply a thin layer on the affected area only. For external use.",
		Timing:       "On clean, dry skin",
	},
	ClassEyeDrops: {
		Frequency:    "Four times daily",
		Duration:     "5-7 days",
		Instructions: "Do not touch the dropper tip to the eye. Wash hands before use.",
		Timing:       "Spread evenly through the day",
	},
	ClassSupplement: {
		Frequency:    "Once daily",
		Duration:     "30 days",
		Instructions: "Take regularly for best effect.",
		Timing:       "After breakfast",
	},
	ClassGeneral: {
		Frequency:    "Twice daily",
		Duration:     "5 days",
		Instructions: "Take as directed. Stop and consult a doctor if side effects occur.",
		Timing:       "After meals",
	},
}

// typeAliases maps catalog "type" values onto classes.
var typeAliases = map[string]DrugClass{
	"antibiotic":            ClassAntibiotic,
	"antibacterial":         ClassAntibiotic,
	"antimalarial":          ClassAntimalarial,
	"antipyretic":           ClassAntipyretic,
	"analgesic":             ClassAnalgesic,
	"painkiller":            ClassAnalgesic,
	"nsaid":                 ClassAnalgesic,
	"antihistamine":         ClassAntihistamine,
	"anti-allergic":         ClassAntihistamine,
	"cough syrup":           ClassCoughSyrup,
	"expectorant":           ClassCoughSyrup,
	"antitussive":           ClassCoughSyrup,
	"decongestant":          ClassDecongestant,
	"bronchodilator":        ClassBronchodilator,
	"antacid":               ClassAntacid,
	"proton pump inhibitor": ClassAntacid,
	"antiemetic":            ClassAntiemetic,
	"rehydration":           ClassRehydration,
	"electrolyte":           ClassRehydration,
	"laxative":              ClassLaxative,
	"urinary alkalizer":     ClassUrinary,
	"antidiabetic":          ClassAntidiabetic,
	"antihypertensive":      ClassAntihypertensive,
	"topical":               ClassTopical,
	"ointment":              ClassTopical,
	"eye drops":             ClassEyeDrops,
	"ophthalmic":            ClassEyeDrops,
	"supplement":            ClassSupplement,
	"vitamin":               ClassSupplement,
}

// ingredients is ordered; the first ingredient found in a composition wins.
var ingredients = []Ingredient{
	{Name: "amoxicillin", Class: ClassAntibiotic, BaseMg: 500, MaxMg: 1000},
	{Name: "azithromycin", Class: ClassAntibiotic, BaseMg: 500, MaxMg: 500},
	{Name: "ciprofloxacin", Class: ClassAntibiotic, BaseMg: 500, MaxMg: 750},
	{Name: "nitrofurantoin", Class: ClassAntibiotic, BaseMg: 100, MaxMg: 100},
	{Name: "doxycycline", Class: ClassAntibiotic, BaseMg: 100, MaxMg: 200},
	{Name: "artemether", Class: ClassAntimalarial, BaseMg: 80, MaxMg: 80},
	{Name: "ibuprofen", Class: ClassAnalgesic, BaseMg: 400, MaxMg: 600},
	{Name: "diclofenac", Class: ClassAnalgesic, BaseMg: 50, MaxMg: 75},
	{Name: "paracetamol", Class: ClassAntipyretic, BaseMg: 500, MaxMg: 1000},
	{Name: "acetaminophen", Class: ClassAntipyretic, BaseMg: 500, MaxMg: 1000},
	{Name: "levocetirizine", Class: ClassAntihistamine, BaseMg: 5, MaxMg: 5},
	{Name: "cetirizine", Class: ClassAntihistamine, BaseMg: 10, MaxMg: 10},
	{Name: "fexofenadine", Class: ClassAntihistamine, BaseMg: 120, MaxMg: 180},
	{Name: "pantoprazole", Class: ClassAntacid, BaseMg: 40, MaxMg: 40},
	{Name: "omeprazole", Class: ClassAntacid, BaseMg: 20, MaxMg: 40},
	{Name: "ondansetron", Class: ClassAntiemetic, BaseMg: 4, MaxMg: 8},
	{Name: "metformin", Class: ClassAntidiabetic, BaseMg: 500, MaxMg: 1000},
	{Name: "amlodipine", Class: ClassAntihypertensive, BaseMg: 5, MaxMg: 10},
}

type nameKeyword struct {
	keyword string
	class   DrugClass
}

// courseKeywords outrank the catalog type: a name that says antibiotic always
// gets the full course warning.
var courseKeywords = []nameKeyword{
	{"antibiotic", ClassAntibiotic},
	{"antimalarial", ClassAntimalarial},
}

// nameKeywords resolves medicines by name when the type is unknown. Keywords
// match whole words (a trailing "s" is allowed); a trailing "*" makes one a
// stem. Order is precedence.
var nameKeywords = []nameKeyword{
	{"inhaler", ClassBronchodilator},
	{"eye drop", ClassEyeDrops},
	{"ors", ClassRehydration},
	{"cough", ClassCoughSyrup},
	{"syrup", ClassCoughSyrup},
	{"antacid", ClassAntacid},
	{"gel", ClassTopical},
	{"cream", ClassTopical},
	{"lotion", ClassTopical},
	{"ointment", ClassTopical},
	{"vitamin", ClassSupplement},
	{"fever", ClassAntipyretic},
	{"pain", ClassAnalgesic},
	{"allergy", ClassAntihistamine},
	{"cold", ClassDecongestant},
}

func ruleFor(class DrugClass) ClassRule {
	if rule, ok := classRules[class]; ok {
		return rule
	}
	return classRules[ClassGeneral]
}

func lookupIngredient(text string) (Ingredient, bool) {
	text = strings.ToLower(text)
	for _, ing := range ingredients {
		if strings.Contains(text, ing.Name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}
