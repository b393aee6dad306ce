package consultation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mediconsult/platform/pkg/common/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsultationLog is the persistence model for finished consultations. The
// patient's free text is not stored.
type ConsultationLog struct {
	ID         string         `gorm:"primaryKey;column:id"`
	Status     string         `gorm:"column:status;index"`
	Disease    string         `gorm:"column:disease;index"`
	Confidence float64        `gorm:"column:confidence"`
	Severity   string         `gorm:"column:severity"`
	Age        string         `gorm:"column:age"`
	Gender     string         `gorm:"column:gender"`
	Language   string         `gorm:"column:language"`
	Symptoms   datatypes.JSON `gorm:"column:symptoms"`
	Response   datatypes.JSON `gorm:"column:response"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
}

// TableName overrides gorm naming.
func (ConsultationLog) TableName() string {
	return "consultation_logs"
}

// Repository stores consultations in Postgres through gorm.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&ConsultationLog{})
}

func (r *Repository) Record(ctx context.Context, req models.ConsultationRequest, resp *models.ConsultationResponse) error {
	log, err := toLog(req, resp)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *Repository) Get(ctx context.Context, id string) (*models.ConsultationResponse, error) {
	var log ConsultationLog
	result := r.db.WithContext(ctx).First(&log, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return fromLog(log)
}

// Recent returns the most recent consultations up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.ConsultationResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []ConsultationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.ConsultationResponse, 0, len(logs))
	for _, log := range logs {
		resp, err := fromLog(log)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// CleanupOlderThan deletes consultations created before now minus ttl.
func (r *Repository) CleanupOlderThan(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-ttl)
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&ConsultationLog{})
	return result.RowsAffected, result.Error
}

func toLog(req models.ConsultationRequest, resp *models.ConsultationResponse) (*ConsultationLog, error) {
	symptoms, err := json.Marshal(resp.Symptoms)
	if err != nil {
		return nil, fmt.Errorf("encode symptoms: %w", err)
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	log := &ConsultationLog{
		ID:        resp.ID,
		Status:    resp.Status,
		Age:       req.PatientDetails.Age,
		Gender:    req.PatientDetails.Gender,
		Language:  req.PatientDetails.Language,
		Symptoms:  datatypes.JSON(symptoms),
		Response:  datatypes.JSON(body),
		CreatedAt: resp.CreatedAt,
	}
	if resp.Prediction != nil {
		log.Disease = resp.Prediction.Disease
		log.Confidence = resp.Prediction.Confidence
		log.Severity = string(resp.Prediction.Severity)
	}
	return log, nil
}

func fromLog(log ConsultationLog) (*models.ConsultationResponse, error) {
	var resp models.ConsultationResponse
	if err := json.Unmarshal(log.Response, &resp); err != nil {
		return nil, fmt.Errorf("decode consultation %s: %w", log.ID, err)
	}
	return &resp, nil
}
