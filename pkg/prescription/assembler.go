package prescription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mediconsult/platform/pkg/advice"
	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/dosing"
	"github.com/mediconsult/platform/pkg/observability/metrics"
)

// Patient is the validated patient context.
type Patient struct {
	Name       string
	Age        int
	Gender     string
	BloodGroup string
	Language   string
}

type Input struct {
	Prediction models.Prediction
	Symptoms   []models.SymptomTag
	Medicines  []models.Medicine
	Patient    Patient
	Narrative  string
}

// Assembler builds prescriptions. Only the advice call leaves the process and
// its failure never aborts assembly.
type Assembler struct {
	composer      *dosing.Composer
	catalog       *catalog.Catalog
	provider      advice.Provider
	adviceTimeout time.Duration
	doctorName    string
	clinicName    string
	now           func() time.Time
}

type Option func(*Assembler)

func WithAdvice(p advice.Provider, timeout time.Duration) Option {
	return func(a *Assembler) {
		a.provider = p
		a.adviceTimeout = timeout
	}
}

func WithLetterhead(doctor, clinic string) Option {
	return func(a *Assembler) {
		if doctor != "" {
			a.doctorName = doctor
		}
		if clinic != "" {
			a.clinicName = clinic
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

func NewAssembler(composer *dosing.Composer, cat *catalog.Catalog, opts ...Option) *Assembler {
	a := &Assembler{
		composer:      composer,
		catalog:       cat,
		adviceTimeout: 8 * time.Second,
		doctorName:    "Dr. AI Physician",
		clinicName:    "MediConsult Virtual Clinic",
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns the prescription and the advice text shown with it.
func (a *Assembler) Assemble(ctx context.Context, in Input) (*models.Prescription, string) {
	now := a.now()
	log := logger.Component("prescription")

	items := make([]models.PrescriptionItem, 0, len(in.Medicines))
	rxOnly := false
	for _, m := range in.Medicines {
		if !a.catalog.Contains(m) {
			log.WithFields(map[string]interface{}{
				"medicine_id": m.ID,
				"medicine":    m.Name,
			}).Warn("Dropping medicine outside the catalog")
			continue
		}
		plan := a.composer.Compose(m, in.Patient.Age, in.Prediction.Severity)
		items = append(items, plan.Item(m))
		rxOnly = rxOnly || m.PrescriptionRequired
	}

	instructions := instructionsFor(in.Prediction.Disease)
	if in.Prediction.Severity == models.SeveritySevere {
		instructions = append(instructions, severeInstruction)
	}
	if rxOnly {
		instructions = append(instructions, rxInstruction)
	}

	rx := &models.Prescription{
		ID:           fmt.Sprintf("RX-%d", now.UnixMilli()),
		PatientName:  patientName(in.Patient.Name),
		Age:          in.Patient.Age,
		Gender:       in.Patient.Gender,
		BloodGroup:   in.Patient.BloodGroup,
		Date:         now,
		Diagnosis:    in.Prediction.Disease,
		Severity:     in.Prediction.Severity,
		Symptoms:     append([]models.SymptomTag(nil), in.Symptoms...),
		Medications:  items,
		Instructions: instructions,
		DoctorName:   a.doctorName,
		ClinicName:   a.clinicName,
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Medicine.Name)
	}
	text, generated := advice.Resolve(ctx, a.provider, a.adviceTimeout, advice.Request{
		Diagnosis: in.Prediction.Disease,
		Severity:  in.Prediction.Severity,
		Symptoms:  in.Symptoms,
		Medicines: names,
		Age:       in.Patient.Age,
		Gender:    in.Patient.Gender,
		Language:  in.Patient.Language,
		Narrative: in.Narrative,
	})
	metrics.ObserveAdvice(generated)

	return rx, text
}

func patientName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Patient"
	}
	return strings.TrimSpace(name)
}
