package consultation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mediconsult/platform/pkg/common/kafka"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/diagnosis"
	"github.com/mediconsult/platform/pkg/formulary"
	"github.com/mediconsult/platform/pkg/observability/metrics"
	"github.com/mediconsult/platform/pkg/prescription"
	"github.com/mediconsult/platform/pkg/symptom"
)

var (
	ErrNotFound            = errors.New("consultation not found")
	ErrPersistenceDisabled = errors.New("consultation history is not enabled")
)

// Store persists finished consultations.
type Store interface {
	Record(ctx context.Context, req models.ConsultationRequest, resp *models.ConsultationResponse) error
	Get(ctx context.Context, id string) (*models.ConsultationResponse, error)
	Recent(ctx context.Context, limit int) ([]models.ConsultationResponse, error)
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

const eventSource = "consult-service"

var moreInfoText = map[string]string{
	"en": "I could not identify specific symptoms. Please describe what you feel, for example fever, cough, headache or stomach pain, and for how long.",
	"hi": "मैं आपके लक्षण पहचान नहीं सका। कृपया बताएं कि आपको क्या तकलीफ है, जैसे बुखार, खांसी, सिर दर्द या पेट दर्द, और कब से।",
}

var noDiagnosisText = map[string]string{
	"en": "Your symptoms do not clearly match a common condition. Please consult a qualified doctor in person for a proper examination.",
	"hi": "आपके लक्षण किसी सामान्य बीमारी से स्पष्ट रूप से मेल नहीं खाते। कृपया सही जांच के लिए किसी योग्य डॉक्टर से मिलें।",
}

type Service struct {
	validator *Validator
	extractor *symptom.Extractor
	scorer    *diagnosis.Scorer
	selector  *formulary.Selector
	assembler *prescription.Assembler
	store     Store
	publisher Publisher
	now       func() time.Time
}

type Option func(*Service)

func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(validator *Validator, extractor *symptom.Extractor, scorer *diagnosis.Scorer, selector *formulary.Selector, assembler *prescription.Assembler, opts ...Option) *Service {
	s := &Service{
		validator: validator,
		extractor: extractor,
		scorer:    scorer,
		selector:  selector,
		assembler: assembler,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Consult runs the pipeline for one request. Only validation failures are
// returned as errors; every other problem degrades to a fallback.
func (s *Service) Consult(ctx context.Context, req models.ConsultationRequest) (*models.ConsultationResponse, error) {
	return s.consult(ctx, req, "")
}

func (s *Service) consult(ctx context.Context, req models.ConsultationRequest, correlationID string) (*models.ConsultationResponse, error) {
	patient, err := s.validator.Validate(req)
	if err != nil {
		metrics.ObserveRejected()
		return nil, err
	}

	resp := &models.ConsultationResponse{
		ID:        uuid.New().String(),
		Symptoms:  s.extractor.Extract(req.Text),
		Medicines: []models.Medicine{},
		CreatedAt: s.now().UTC(),
	}

	switch prediction := s.scorer.Predict(resp.Symptoms); {
	case len(resp.Symptoms) == 0:
		resp.Status = models.StatusNeedMoreInfo
		resp.Advice = moreInfoText[patient.Language]
	case prediction == nil:
		resp.Status = models.StatusNoDiagnosis
		resp.Advice = noDiagnosisText[patient.Language]
	default:
		resp.Status = models.StatusDiagnosed
		resp.Prediction = prediction
		resp.Medicines = s.selector.Select(prediction.Disease, prediction.Severity)
		resp.Prescription, resp.Advice = s.assembler.Assemble(ctx, prescription.Input{
			Prediction: *prediction,
			Symptoms:   resp.Symptoms,
			Medicines:  resp.Medicines,
			Patient:    patient,
			Narrative:  req.Text,
		})
	}

	metrics.ObserveConsultation(resp.Status)
	entry := logger.Component("consultation").WithFields(map[string]interface{}{
		"consultation_id": resp.ID,
		"status":          resp.Status,
		"symptoms":        len(resp.Symptoms),
	})
	if resp.Prediction != nil {
		entry = entry.WithField("disease", resp.Prediction.Disease).WithField("confidence", resp.Prediction.Confidence)
	}
	entry.Info("Consultation completed")

	s.record(ctx, req, resp)
	s.publish(ctx, resp, correlationID)
	return resp, nil
}

func (s *Service) record(ctx context.Context, req models.ConsultationRequest, resp *models.ConsultationResponse) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(ctx, req, resp); err != nil {
		metrics.ObserveRecordFailure()
		logger.Component("consultation").WithError(err).WithField("consultation_id", resp.ID).
			Error("Failed to record consultation")
	}
}

func (s *Service) publish(ctx context.Context, resp *models.ConsultationResponse, correlationID string) {
	if s.publisher == nil {
		return
	}
	data := map[string]interface{}{
		"consultation_id": resp.ID,
		"status":          resp.Status,
		"response":        resp,
	}
	if correlationID != "" {
		data["request_id"] = correlationID
	}
	err := s.publisher.PublishEvent(ctx, kafka.EventConsultationCompleted, eventSource, data)
	metrics.ObserveEvent(err)
	if err != nil {
		logger.Component("consultation").WithError(err).WithField("consultation_id", resp.ID).
			Warn("Failed to publish consultation event")
	}
}

func (s *Service) Get(ctx context.Context, id string) (*models.ConsultationResponse, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]models.ConsultationResponse, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.store.Recent(ctx, limit)
}

// Extract exposes the symptom extractor for the standalone endpoint.
func (s *Service) Extract(text string) []symptom.Match {
	return s.extractor.Explain(text)
}
