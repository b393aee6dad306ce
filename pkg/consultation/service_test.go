package consultation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/kafka"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/diagnosis"
	"github.com/mediconsult/platform/pkg/dosing"
	"github.com/mediconsult/platform/pkg/formulary"
	"github.com/mediconsult/platform/pkg/prescription"
	"github.com/mediconsult/platform/pkg/symptom"
)

type memoryStore struct {
	mu    sync.Mutex
	items map[string]models.ConsultationResponse
	order []string
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string]models.ConsultationResponse)}
}

func (m *memoryStore) Record(_ context.Context, _ models.ConsultationRequest, resp *models.ConsultationResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[resp.ID] = *resp
	m.order = append(m.order, resp.ID)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*models.ConsultationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &resp, nil
}

func (m *memoryStore) Recent(_ context.Context, limit int) ([]models.ConsultationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConsultationResponse
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.items[m.order[i]])
	}
	return out, nil
}

type publishedEvent struct {
	eventType string
	source    string
	data      map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, eventType string, source string, data map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, source: source, data: data})
	return p.err
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, threshold float64, opts ...Option) *Service {
	t.Helper()
	extractor, err := symptom.NewExtractor(symptom.DefaultRules())
	if err != nil {
		t.Fatalf("extractor: %v", err)
	}
	diseases := diagnosis.DefaultCatalog()
	scorer, err := diagnosis.NewScorer(diseases, threshold)
	if err != nil {
		t.Fatalf("scorer: %v", err)
	}
	cat := catalog.Default()
	clock := func() time.Time { return fixedNow }
	selector := formulary.NewSelector(cat, diseases.CategoryMap())
	assembler := prescription.NewAssembler(dosing.NewComposer(), cat, prescription.WithClock(clock))
	opts = append([]Option{WithClock(clock)}, opts...)
	return NewService(NewValidator(0), extractor, scorer, selector, assembler, opts...)
}

func consultRequest(text, age string) models.ConsultationRequest {
	return models.ConsultationRequest{
		Text:           text,
		PatientDetails: models.PatientDetails{Name: "Asha", Age: age, Gender: "female", Language: "en"},
	}
}

func TestConsultDiagnosesFeverAndHeadache(t *testing.T) {
	service := newTestService(t, diagnosis.DefaultMinConfidence)

	resp, err := service.Consult(context.Background(), consultRequest("I have fever and headache", "34"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != models.StatusDiagnosed {
		t.Fatalf("expected diagnosed, got %s", resp.Status)
	}
	if resp.Prediction == nil || resp.Prediction.Disease != "Viral Fever" || resp.Prediction.Confidence != 60 {
		t.Fatalf("unexpected prediction %+v", resp.Prediction)
	}
	if len(resp.Medicines) == 0 || len(resp.Medicines) > 3 {
		t.Fatalf("expected 1-3 medicines for moderate severity, got %d", len(resp.Medicines))
	}
	if resp.Prescription == nil || len(resp.Prescription.Medications) != len(resp.Medicines) {
		t.Fatalf("expected one prescription line per medicine, got %+v", resp.Prescription)
	}
	if resp.Prescription.Age != 34 || resp.Prescription.PatientName != "Asha" {
		t.Fatalf("unexpected patient on prescription %+v", resp.Prescription)
	}
	if resp.Advice == "" {
		t.Fatal("expected fallback advice")
	}
	if resp.ID == "" || !resp.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected envelope id=%q created_at=%v", resp.ID, resp.CreatedAt)
	}
}

func TestConsultDiagnosesUTI(t *testing.T) {
	service := newTestService(t, diagnosis.DefaultMinConfidence)

	resp, err := service.Consult(context.Background(), consultRequest("burning urination and frequent urination", "29"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Prediction == nil || resp.Prediction.Disease != "UTI" {
		t.Fatalf("expected UTI, got %+v", resp.Prediction)
	}
	want := []string{"Amoxicillin", "Azithromycin", "Nitrofurantoin"}
	if len(resp.Medicines) != len(want) {
		t.Fatalf("expected %v, got %+v", want, resp.Medicines)
	}
	for i, name := range want {
		if resp.Medicines[i].Name != name {
			t.Fatalf("expected %v, got %+v", want, resp.Medicines)
		}
	}
	found := false
	for _, line := range resp.Prescription.Instructions {
		if strings.Contains(line, "3 litres") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected urinary hydration instruction, got %v", resp.Prescription.Instructions)
	}
}

func TestConsultNeedsMoreInfo(t *testing.T) {
	service := newTestService(t, diagnosis.DefaultMinConfidence)

	for _, text := range []string{"", "I want to book an appointment"} {
		resp, err := service.Consult(context.Background(), consultRequest(text, ""))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if resp.Status != models.StatusNeedMoreInfo {
			t.Fatalf("%q: expected need_more_info, got %s", text, resp.Status)
		}
		if resp.Prediction != nil || resp.Prescription != nil {
			t.Fatalf("%q: expected no prediction or prescription", text)
		}
		if resp.Symptoms == nil || resp.Medicines == nil || len(resp.Medicines) != 0 {
			t.Fatalf("%q: expected empty non-nil lists", text)
		}
		if resp.Advice != moreInfoText["en"] {
			t.Fatalf("%q: unexpected advice %q", text, resp.Advice)
		}
	}
}

func TestConsultNoDiagnosisBelowThreshold(t *testing.T) {
	service := newTestService(t, 95)

	req := consultRequest("I have fever and headache", "40")
	req.PatientDetails.Language = "hi"
	resp, err := service.Consult(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != models.StatusNoDiagnosis {
		t.Fatalf("expected no_diagnosis, got %s", resp.Status)
	}
	if len(resp.Symptoms) != 2 || resp.Prediction != nil {
		t.Fatalf("expected symptoms without prediction, got %+v", resp)
	}
	if resp.Advice != noDiagnosisText["hi"] {
		t.Fatalf("expected hindi advice, got %q", resp.Advice)
	}
}

func TestConsultRejectsInvalidRequests(t *testing.T) {
	service := newTestService(t, diagnosis.DefaultMinConfidence)

	cases := []models.ConsultationRequest{
		consultRequest("fever", "two hundred"),
		consultRequest("fever", "150"),
		{Text: "fever", PatientDetails: models.PatientDetails{Age: "30", BloodGroup: "C+"}},
		{Text: strings.Repeat("a", DefaultMaxTextRunes+1)},
	}
	for _, req := range cases {
		if _, err := service.Consult(context.Background(), req); !IsValidationError(err) {
			t.Errorf("expected validation error for %+v, got %v", req.PatientDetails, err)
		}
	}
}

func TestConsultRecordsAndPublishes(t *testing.T) {
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	service := newTestService(t, diagnosis.DefaultMinConfidence, WithStore(store), WithPublisher(publisher))

	resp, err := service.Consult(context.Background(), consultRequest("fever and headache", "34"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := service.Get(context.Background(), resp.ID)
	if err != nil || stored.ID != resp.ID {
		t.Fatalf("expected stored consultation, got %+v, %v", stored, err)
	}
	recent, err := service.Recent(context.Background(), 10)
	if err != nil || len(recent) != 1 {
		t.Fatalf("expected one recent consultation, got %d, %v", len(recent), err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.eventType != kafka.EventConsultationCompleted || event.source != eventSource {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.data["consultation_id"] != resp.ID || event.data["status"] != models.StatusDiagnosed {
		t.Fatalf("unexpected event data %+v", event.data)
	}
	if _, ok := event.data["request_id"]; ok {
		t.Fatal("direct consultations carry no request id")
	}
}

func TestConsultSurvivesStoreAndPublisherFailures(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("db down")
	publisher := &recordingPublisher{err: errors.New("broker down")}
	service := newTestService(t, diagnosis.DefaultMinConfidence, WithStore(store), WithPublisher(publisher))

	resp, err := service.Consult(context.Background(), consultRequest("fever and headache", "34"))
	if err != nil {
		t.Fatalf("side effect failures must not fail the consultation: %v", err)
	}
	if resp.Status != models.StatusDiagnosed {
		t.Fatalf("unexpected status %s", resp.Status)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	service := newTestService(t, diagnosis.DefaultMinConfidence)

	if _, err := service.Get(context.Background(), "x"); !errors.Is(err, ErrPersistenceDisabled) {
		t.Fatalf("expected ErrPersistenceDisabled, got %v", err)
	}
	if _, err := service.Recent(context.Background(), 5); !errors.Is(err, ErrPersistenceDisabled) {
		t.Fatalf("expected ErrPersistenceDisabled, got %v", err)
	}
}
