package consultation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mediconsult/platform/pkg/common/kafka"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
)

// Worker answers consultation.requested events from the bus. Results go out
// through the service's publisher as consultation.completed.
type Worker struct {
	service *Service
}

func NewWorker(service *Service) *Worker {
	return &Worker{service: service}
}

// HandleEvent matches kafka.EventHandler. Events that can never succeed are
// wrapped with kafka.ErrPoison so the consumer commits past them.
func (w *Worker) HandleEvent(ctx context.Context, event models.Event) error {
	if event.Type != kafka.EventConsultationRequested {
		logger.Component("consult-worker").WithFields(map[string]interface{}{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).Debug("Ignoring event")
		return nil
	}

	req, err := decodeRequest(event.Data)
	if err != nil {
		return fmt.Errorf("event %s: %v: %w", event.ID, err, kafka.ErrPoison)
	}

	resp, err := w.service.consult(ctx, req, event.ID)
	if err != nil {
		if IsValidationError(err) {
			return fmt.Errorf("event %s: %v: %w", event.ID, err, kafka.ErrPoison)
		}
		return err
	}

	logger.Component("consult-worker").WithFields(map[string]interface{}{
		"event_id":        event.ID,
		"consultation_id": resp.ID,
		"status":          resp.Status,
	}).Info("Processed consultation request")
	return nil
}

func decodeRequest(data map[string]interface{}) (models.ConsultationRequest, error) {
	var req models.ConsultationRequest
	if data == nil {
		return req, fmt.Errorf("event has no data")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return req, fmt.Errorf("encode event data: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("decode consultation request: %w", err)
	}
	return req, nil
}
