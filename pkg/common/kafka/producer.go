package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/segmentio/kafka-go"
)

const (
	EventConsultationRequested = "consultation.requested"
	EventConsultationCompleted = "consultation.completed"
)

// Keys in an event's data that are lifted into message metadata.
const (
	keyConsultationID = "consultation_id"
	keyRequestID      = "request_id"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{writer: writer}
}

// NewEvent wraps data in an envelope with a fresh id. Correlation keys found
// in data are copied into Metadata so consumers can route without decoding.
func NewEvent(eventType, source string, data map[string]interface{}) models.Event {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	for _, key := range []string{keyConsultationID, keyRequestID} {
		if v, ok := data[key].(string); ok && v != "" {
			if event.Metadata == nil {
				event.Metadata = make(map[string]string)
			}
			event.Metadata[key] = v
		}
	}
	return event
}

// encode turns an event into a message keyed by consultation id when present,
// so every event of one consultation lands on the same partition.
func encode(event models.Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	key := event.ID
	if id := event.Metadata[keyConsultationID]; id != "" {
		key = id
	}

	headers := []kafka.Header{
		{Key: "event-type", Value: []byte(event.Type)},
		{Key: "source", Value: []byte(event.Source)},
	}
	if id := event.Metadata[keyRequestID]; id != "" {
		headers = append(headers, kafka.Header{Key: "request-id", Value: []byte(id)})
	}

	return kafka.Message{Key: []byte(key), Value: value, Headers: headers}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error {
	event := NewEvent(eventType, source, data)
	message, err := encode(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"event_id":   event.ID,
			"event_type": eventType,
		}).Error("Failed to publish event")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"event_id":   event.ID,
		"event_type": eventType,
		"topic":      p.writer.Topic,
	}).Debug("Event published")

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
