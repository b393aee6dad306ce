package diagnosis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type DiseaseProfile struct {
	Name       string   `yaml:"name" json:"name"`
	Symptoms   []string `yaml:"symptoms" json:"symptoms"`
	Categories []string `yaml:"categories" json:"categories"`
}

// Catalog is the disease table. Diseases listed in neither Severe nor Moderate
// are mild.
type Catalog struct {
	Profiles []DiseaseProfile `yaml:"profiles" json:"profiles"`
	Severe   []string         `yaml:"severe" json:"severe"`
	Moderate []string         `yaml:"moderate" json:"moderate"`
}

func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Profiles) == 0 {
		return Catalog{}, fmt.Errorf("disease catalog empty")
	}
	return cat, nil
}

// Lookup finds a profile by name, ignoring case.
func (c Catalog) Lookup(name string) (DiseaseProfile, bool) {
	for _, p := range c.Profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return DiseaseProfile{}, false
}

// CategoryMap returns disease name -> medicine categories for the selector.
func (c Catalog) CategoryMap() map[string][]string {
	out := make(map[string][]string, len(c.Profiles))
	for _, p := range c.Profiles {
		if len(p.Categories) == 0 {
			continue
		}
		out[p.Name] = append([]string(nil), p.Categories...)
	}
	return out
}

func DefaultCatalog() Catalog {
	return Catalog{
		Profiles: []DiseaseProfile{
			{Name: "Common Cold", Symptoms: []string{"runny_nose", "sneezing", "sore_throat", "nasal_congestion", "cough", "headache"}, Categories: []string{"respiratory", "pain_relief"}},
			{Name: "Flu", Symptoms: []string{"fever", "chills", "headache", "body_ache", "fatigue", "cough", "sore_throat"}, Categories: []string{"fever", "pain_relief", "respiratory"}},
			{Name: "Viral Fever", Symptoms: []string{"fever", "headache", "body_ache", "fatigue"}, Categories: []string{"fever", "pain_relief"}},
			{Name: "Dengue", Symptoms: []string{"fever", "headache", "joint_pain", "body_ache", "rash", "nausea", "vomiting", "fatigue"}, Categories: []string{"fever", "general"}},
			{Name: "Malaria", Symptoms: []string{"fever", "chills", "sweating", "headache", "nausea", "vomiting", "body_ache"}, Categories: []string{"antimalarial", "fever"}},
			{Name: "Typhoid", Symptoms: []string{"fever", "stomach_pain", "headache", "loss_of_appetite", "fatigue", "diarrhea", "constipation"}, Categories: []string{"antibiotic", "fever", "digestive"}},
			{Name: "Migraine", Symptoms: []string{"headache", "nausea", "vomiting", "dizziness", "blurred_vision"}, Categories: []string{"pain_relief", "digestive"}},
			{Name: "Gastroenteritis", Symptoms: []string{"diarrhea", "vomiting", "nausea", "stomach_pain", "fever"}, Categories: []string{"digestive", "general"}},
			{Name: "Food Poisoning", Symptoms: []string{"nausea", "vomiting", "diarrhea", "stomach_pain"}, Categories: []string{"digestive"}},
			{Name: "Acid Reflux", Symptoms: []string{"acidity", "chest_pain", "nausea", "stomach_pain"}, Categories: []string{"digestive"}},
			{Name: "Constipation", Symptoms: []string{"constipation", "stomach_pain", "loss_of_appetite"}, Categories: []string{"digestive"}},
			{Name: "Bronchitis", Symptoms: []string{"cough", "shortness_of_breath", "wheezing", "fatigue", "chest_pain", "fever"}, Categories: []string{"respiratory", "antibiotic"}},
			{Name: "Asthma", Symptoms: []string{"wheezing", "shortness_of_breath", "cough", "chest_pain"}, Categories: []string{"respiratory"}},
			{Name: "Pneumonia", Symptoms: []string{"fever", "cough", "shortness_of_breath", "chest_pain", "chills", "fatigue"}, Categories: []string{"antibiotic", "respiratory", "fever"}},
			{Name: "Allergic Rhinitis", Symptoms: []string{"sneezing", "runny_nose", "nasal_congestion", "itching", "eye_redness"}, Categories: []string{"allergy"}},
			{Name: "Skin Allergy", Symptoms: []string{"rash", "itching"}, Categories: []string{"allergy", "dermatology"}},
			{Name: "Conjunctivitis", Symptoms: []string{"eye_redness", "itching"}, Categories: []string{"eye_care"}},
			{Name: "Ear Infection", Symptoms: []string{"ear_pain", "fever"}, Categories: []string{"antibiotic", "pain_relief"}},
			{Name: "UTI", Symptoms: []string{"burning_urination", "frequent_urination", "stomach_pain", "fever"}, Categories: []string{"antibiotic", "urinary"}},
			{Name: "Diabetes", Symptoms: []string{"excessive_thirst", "frequent_urination", "weight_loss", "fatigue", "blurred_vision"}, Categories: []string{"diabetes", "general"}},
			{Name: "Hypertension", Symptoms: []string{"headache", "dizziness", "chest_pain", "palpitations", "blurred_vision"}, Categories: []string{"cardiac"}},
			{Name: "Arthritis", Symptoms: []string{"joint_pain", "fatigue"}, Categories: []string{"pain_relief"}},
			{Name: "Back Strain", Symptoms: []string{"back_pain"}, Categories: []string{"pain_relief"}},
			{Name: "Anxiety Disorder", Symptoms: []string{"anxiety", "palpitations", "insomnia", "sweating", "dizziness"}, Categories: []string{"general"}},
			{Name: "Insomnia", Symptoms: []string{"insomnia", "fatigue", "anxiety"}, Categories: []string{"general"}},
		},
		Severe:   []string{"Dengue", "Malaria", "Typhoid", "Pneumonia"},
		Moderate: []string{"Flu", "Viral Fever", "Gastroenteritis", "Food Poisoning", "Bronchitis", "Asthma", "UTI", "Diabetes", "Hypertension", "Migraine", "Ear Infection"},
	}
}
