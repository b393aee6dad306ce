package diagnosis

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/symptom"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(DefaultCatalog(), DefaultMinConfidence)
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	return scorer
}

func TestPredictFeverAndHeadache(t *testing.T) {
	scorer := newDefaultScorer(t)

	pred := scorer.Predict([]models.SymptomTag{symptom.Headache, symptom.Fever})
	if pred == nil {
		t.Fatal("expected a prediction")
	}
	if pred.Disease != "Viral Fever" {
		t.Fatalf("expected Viral Fever, got %s", pred.Disease)
	}
	if pred.Confidence != 60 {
		t.Fatalf("expected confidence 60, got %.1f", pred.Confidence)
	}
	if pred.Severity != models.SeverityModerate {
		t.Fatalf("expected moderate severity, got %s", pred.Severity)
	}
	want := []models.SymptomTag{symptom.Fever, symptom.Headache}
	if !reflect.DeepEqual(pred.MatchedSymptoms, want) {
		t.Fatalf("expected matched %v, got %v", want, pred.MatchedSymptoms)
	}
}

func TestPredictUrinarySymptomsGivesUTI(t *testing.T) {
	scorer := newDefaultScorer(t)

	pred := scorer.Predict([]models.SymptomTag{symptom.BurningUrination, symptom.FrequentUrination})
	if pred == nil || pred.Disease != "UTI" {
		t.Fatalf("expected UTI, got %+v", pred)
	}
}

func TestPredictEmptyIsNil(t *testing.T) {
	scorer := newDefaultScorer(t)

	if pred := scorer.Predict(nil); pred != nil {
		t.Fatalf("expected nil, got %+v", pred)
	}
	if pred := scorer.Predict([]models.SymptomTag{}); pred != nil {
		t.Fatalf("expected nil, got %+v", pred)
	}
}

func TestPredictSupersetOfProfileAlwaysMatches(t *testing.T) {
	scorer := newDefaultScorer(t)

	for _, p := range DefaultCatalog().Profiles {
		input := []models.SymptomTag{symptom.Sweating}
		for _, s := range p.Symptoms {
			input = append(input, models.SymptomTag(s))
		}
		pred := scorer.Predict(input)
		if pred == nil {
			t.Fatalf("%s: expected a prediction", p.Name)
		}
		if pred.Confidence <= 0 || pred.Confidence > 100 {
			t.Fatalf("%s: confidence out of range: %.1f", p.Name, pred.Confidence)
		}
		if len(pred.MatchedSymptoms) == 0 {
			t.Fatalf("%s: expected matched symptoms", p.Name)
		}
		best, _ := DefaultCatalog().Lookup(pred.Disease)
		for _, m := range pred.MatchedSymptoms {
			if !containsTag(input, m) || !containsString(best.Symptoms, string(m)) {
				t.Fatalf("%s: matched symptom %s not in input and profile", p.Name, m)
			}
		}
	}
}

func TestPredictBelowThresholdIsNil(t *testing.T) {
	scorer, err := NewScorer(DefaultCatalog(), 95)
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	if pred := scorer.Predict([]models.SymptomTag{symptom.Fever, symptom.Headache}); pred != nil {
		t.Fatalf("expected nil, got %+v", pred)
	}
}

func TestPredictTieBreaksAlphabetically(t *testing.T) {
	cat := Catalog{Profiles: []DiseaseProfile{
		{Name: "Beta Fever", Symptoms: []string{"fever", "cough"}},
		{Name: "Alpha Fever", Symptoms: []string{"fever", "cough"}},
	}}
	scorer, err := NewScorer(cat, DefaultMinConfidence)
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	for i := 0; i < 5; i++ {
		pred := scorer.Predict([]models.SymptomTag{symptom.Cough, symptom.Fever})
		if pred == nil || pred.Disease != "Alpha Fever" {
			t.Fatalf("expected Alpha Fever, got %+v", pred)
		}
	}
}

func TestPredictSeverity(t *testing.T) {
	scorer := newDefaultScorer(t)

	pred := scorer.Predict([]models.SymptomTag{symptom.Sneezing, symptom.RunnyNose, symptom.Itching})
	if pred == nil || pred.Disease != "Allergic Rhinitis" {
		t.Fatalf("expected Allergic Rhinitis, got %+v", pred)
	}
	if pred.Severity != models.SeverityModerate {
		t.Fatalf("expected mild bumped to moderate, got %s", pred.Severity)
	}

	pred = scorer.Predict([]models.SymptomTag{symptom.Rash, symptom.Itching})
	if pred == nil || pred.Disease != "Skin Allergy" || pred.Severity != models.SeverityMild {
		t.Fatalf("expected mild Skin Allergy, got %+v", pred)
	}

	pred = scorer.Predict([]models.SymptomTag{
		symptom.Fever, symptom.Cough, symptom.ShortnessOfBreath, symptom.ChestPain, symptom.Chills, symptom.Fatigue,
	})
	if pred == nil || pred.Disease != "Pneumonia" || pred.Severity != models.SeveritySevere {
		t.Fatalf("expected severe Pneumonia, got %+v", pred)
	}
	if pred.Confidence != 100 {
		t.Fatalf("expected full confidence, got %.1f", pred.Confidence)
	}
}

func TestNewScorerValidation(t *testing.T) {
	cases := map[string]Catalog{
		"unknown symptom": {Profiles: []DiseaseProfile{{Name: "X", Symptoms: []string{"glowing"}}}},
		"duplicate":       {Profiles: []DiseaseProfile{{Name: "X", Symptoms: []string{"fever"}}, {Name: "x", Symptoms: []string{"cough"}}}},
		"no symptoms":     {Profiles: []DiseaseProfile{{Name: "X"}}},
		"no name":         {Profiles: []DiseaseProfile{{Symptoms: []string{"fever"}}}},
		"empty":           {},
	}
	for name, cat := range cases {
		if _, err := NewScorer(cat, DefaultMinConfidence); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := NewScorer(DefaultCatalog(), 100); err == nil {
		t.Fatal("expected error for threshold 100")
	}
}

func TestLoadCatalogFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diseases.yaml")
	content := []byte(`profiles:
  - name: Sinusitis
    symptoms: [nasal_congestion, headache]
    categories: [respiratory]
severe: []
moderate: [Sinusitis]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cat.CategoryMap()["Sinusitis"]; !reflect.DeepEqual(got, []string{"respiratory"}) {
		t.Fatalf("unexpected categories %v", got)
	}

	scorer, err := NewScorer(cat, DefaultMinConfidence)
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	pred := scorer.Predict([]models.SymptomTag{symptom.NasalCongestion})
	if pred == nil || pred.Disease != "Sinusitis" || pred.Severity != models.SeverityModerate {
		t.Fatalf("unexpected prediction %+v", pred)
	}
}

func TestLoadCatalogMissingFileFallsBack(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, ok := cat.Lookup("uti"); !ok {
		t.Fatal("expected default catalog on missing file")
	}
}

func containsTag(tags []models.SymptomTag, tag models.SymptomTag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
