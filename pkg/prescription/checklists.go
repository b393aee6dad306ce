package prescription

import "strings"

type checklist struct {
	diseases   []string
	substrings []string
	lines      []string
}

func (c checklist) applies(disease string) bool {
	lower := strings.ToLower(disease)
	for _, d := range c.diseases {
		if strings.EqualFold(d, disease) {
			return true
		}
	}
	for _, s := range c.substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

var generalInstructions = []string{
	"Drink at least 8-10 glasses of water daily.",
	"Get adequate rest and sleep.",
	"Follow up if symptoms persist beyond 3 days or get worse.",
}

var checklists = []checklist{
	{
		diseases:   []string{"Common Cold", "Flu", "Bronchitis", "Asthma", "Pneumonia", "Allergic Rhinitis"},
		substrings: []string{"respiratory", "cold", "cough", "sinus"},
		lines: []string{
			"Take steam inhalation twice daily.",
			"Gargle with warm salt water.",
			"Avoid cold drinks and dusty places.",
		},
	},
	{
		diseases:   []string{"Flu", "Dengue", "Malaria", "Typhoid"},
		substrings: []string{"fever"},
		lines: []string{
			"Check your temperature every 6 hours and keep a record.",
			"Sponge with lukewarm water if temperature goes above 102°F.",
		},
	},
	{
		diseases: []string{"Dengue"},
		lines: []string{
			"Get a platelet count test done.",
			"Avoid ibuprofen and aspirin.",
		},
	},
	{
		diseases:   []string{"Gastroenteritis", "Food Poisoning", "Typhoid", "Acid Reflux", "Constipation"},
		substrings: []string{"gastr", "stomach", "diarrh"},
		lines: []string{
			"Eat light, home-cooked food such as khichdi, curd rice or bananas.",
			"Avoid spicy, oily and street food.",
			"Sip ORS if you have loose motions or vomiting.",
		},
	},
	{
		diseases:   []string{"UTI"},
		substrings: []string{"urinary", "kidney"},
		lines: []string{
			"Drink at least 3 litres of water a day.",
			"Do not hold urine for long periods.",
			"Maintain good personal hygiene.",
		},
	},
	{
		diseases: []string{"Diabetes"},
		lines: []string{
			"Monitor blood sugar levels regularly.",
			"Avoid sugary food and refined carbohydrates.",
		},
	},
	{
		diseases:   []string{"Hypertension"},
		substrings: []string{"pressure"},
		lines: []string{
			"Limit salt intake.",
			"Check blood pressure daily and keep a log.",
		},
	},
	{
		diseases:   []string{"Skin Allergy"},
		substrings: []string{"skin", "rash", "derma"},
		lines: []string{
			"Avoid scratching the affected area.",
			"Wear loose cotton clothing.",
		},
	},
	{
		diseases:   []string{"Conjunctivitis"},
		substrings: []string{"eye"},
		lines: []string{
			"Do not rub your eyes and wash hands often.",
			"Use a separate towel.",
		},
	},
}

const (
	severeInstruction = "Visit a doctor in person within 24 hours for a physical evaluation."
	rxInstruction     = "Medicines marked prescription-only must be confirmed by a registered medical practitioner."
)

func instructionsFor(disease string) []string {
	out := append([]string(nil), generalInstructions...)
	seen := make(map[string]struct{}, len(out))
	for _, l := range out {
		seen[l] = struct{}{}
	}
	for _, c := range checklists {
		if !c.applies(disease) {
			continue
		}
		for _, l := range c.lines {
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}
