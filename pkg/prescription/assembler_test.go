package prescription

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mediconsult/platform/pkg/advice"
	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/dosing"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newAssembler(opts ...Option) (*Assembler, *catalog.Catalog) {
	cat := catalog.Default()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewAssembler(dosing.NewComposer(), cat, opts...), cat
}

func mustGet(t *testing.T, cat *catalog.Catalog, id string) models.Medicine {
	t.Helper()
	m, err := cat.Get(id)
	if err != nil {
		t.Fatalf("catalog lookup %s: %v", id, err)
	}
	return m
}

func TestAssembleBuildsOneItemPerCatalogMedicine(t *testing.T) {
	assembler, cat := newAssembler(WithLetterhead("Dr. Test", "Test Clinic"))
	amox := mustGet(t, cat, "amoxicillin-500mg")
	nitro := mustGet(t, cat, "nitrofurantoin-100mg")

	rx, text := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "UTI", Confidence: 60, Severity: models.SeverityModerate},
		Symptoms:   []models.SymptomTag{"burning_urination", "frequent_urination"},
		Medicines:  []models.Medicine{amox, {ID: "ghost", Name: "Ghost Pill"}, nitro},
		Patient:    Patient{Name: "Asha", Age: 29, Gender: "female", Language: "en"},
	})

	if rx.ID != "RX-1773480600000" {
		t.Fatalf("unexpected id %s", rx.ID)
	}
	if !rx.Date.Equal(fixedNow) || rx.DoctorName != "Dr. Test" || rx.ClinicName != "Test Clinic" {
		t.Fatalf("unexpected header %+v", rx)
	}
	if len(rx.Medications) != 2 {
		t.Fatalf("expected 2 items, got %d", len(rx.Medications))
	}
	for _, item := range rx.Medications {
		if !cat.Contains(item.Medicine) {
			t.Fatalf("item outside catalog: %+v", item.Medicine)
		}
		if !strings.Contains(item.Instructions, "Complete the full course") {
			t.Fatalf("antibiotic item missing course instruction: %q", item.Instructions)
		}
	}
	joined := strings.Join(rx.Instructions, "\n")
	for _, want := range []string{"8-10 glasses", "3 litres", "Follow up", rxInstruction} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in instructions:\n%s", want, joined)
		}
	}
	if text == "" {
		t.Fatal("expected fallback advice")
	}
}

func TestAssembleSevereAddsInPersonVisit(t *testing.T) {
	assembler, cat := newAssembler()
	rx, _ := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "Dengue", Confidence: 70, Severity: models.SeveritySevere},
		Medicines:  []models.Medicine{mustGet(t, cat, "paracetamol-500mg")},
		Patient:    Patient{Age: 40},
	})

	joined := strings.Join(rx.Instructions, "\n")
	for _, want := range []string{severeInstruction, "platelet", "temperature every 6 hours"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in instructions:\n%s", want, joined)
		}
	}
	if rx.PatientName != "Patient" {
		t.Fatalf("expected placeholder name, got %q", rx.PatientName)
	}
}

func TestAssembleRespiratoryChecklistBySubstring(t *testing.T) {
	assembler, _ := newAssembler()
	rx, _ := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "Upper Respiratory Infection", Confidence: 50, Severity: models.SeverityMild},
		Patient:    Patient{Age: 30},
	})
	if !strings.Contains(strings.Join(rx.Instructions, "\n"), "steam inhalation") {
		t.Fatalf("expected steam inhalation advice, got %v", rx.Instructions)
	}
	if len(rx.Medications) != 0 {
		t.Fatalf("expected no medications, got %d", len(rx.Medications))
	}
}

func TestAssembleAdviceFailureDoesNotAbort(t *testing.T) {
	failing := advice.ProviderFunc(func(context.Context, advice.Request) (string, error) {
		return "", errors.New("provider unavailable")
	})
	assembler, cat := newAssembler(WithAdvice(failing, 50*time.Millisecond))

	rx, text := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "Flu", Confidence: 64, Severity: models.SeverityModerate},
		Medicines:  []models.Medicine{mustGet(t, cat, "paracetamol-500mg")},
		Patient:    Patient{Age: 30, Language: "en"},
	})
	if rx == nil || len(rx.Medications) != 1 {
		t.Fatalf("expected a prescription, got %+v", rx)
	}
	if !strings.Contains(text, "Flu") {
		t.Fatalf("expected fallback advice mentioning the diagnosis, got %q", text)
	}
}

func TestAssemblePassesContextToProvider(t *testing.T) {
	var got advice.Request
	p := advice.ProviderFunc(func(_ context.Context, req advice.Request) (string, error) {
		got = req
		return "Rest and fluids.", nil
	})
	assembler, cat := newAssembler(WithAdvice(p, time.Second))

	_, text := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "Flu", Confidence: 64, Severity: models.SeverityModerate},
		Symptoms:   []models.SymptomTag{"fever"},
		Medicines:  []models.Medicine{mustGet(t, cat, "paracetamol-500mg")},
		Patient:    Patient{Age: 52, Gender: "male", Language: "hi"},
		Narrative:  "bukhar hai",
	})
	if text != "Rest and fluids." {
		t.Fatalf("unexpected advice %q", text)
	}
	if got.Diagnosis != "Flu" || got.Age != 52 || got.Language != "hi" || got.Narrative != "bukhar hai" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Medicines) != 1 || got.Medicines[0] != "Paracetamol" {
		t.Fatalf("unexpected medicines %v", got.Medicines)
	}
}

func TestAssembleChildDosing(t *testing.T) {
	assembler, cat := newAssembler()
	para := mustGet(t, cat, "paracetamol-500mg")

	rx, _ := assembler.Assemble(context.Background(), Input{
		Prediction: models.Prediction{Disease: "Viral Fever", Confidence: 60, Severity: models.SeverityModerate},
		Medicines:  []models.Medicine{para},
		Patient:    Patient{Age: 8},
	})
	if rx.Medications[0].Dosage != "250 mg" {
		t.Fatalf("expected 250 mg for a child, got %q", rx.Medications[0].Dosage)
	}
}
