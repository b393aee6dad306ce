package models

import (
	"time"
)

// SymptomTag is a canonical symptom identifier such as "fever" or "stomach_pain".
// The vocabulary lives in pkg/symptom.
type SymptomTag string

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Consultation outcomes
const (
	StatusNeedMoreInfo = "need_more_info"
	StatusNoDiagnosis  = "no_diagnosis"
	StatusDiagnosed    = "diagnosed"
)

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // consultation.requested, consultation.completed
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Diagnosis
type Prediction struct {
	Disease         string       `json:"disease"`
	Confidence      float64      `json:"confidence"` // 0-100, heuristic
	MatchedSymptoms []SymptomTag `json:"matched_symptoms"`
	Severity        Severity     `json:"severity"`
}

// Catalog
type Medicine struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	Manufacturer         string  `json:"manufacturer"`
	Type                 string  `json:"type"`
	Composition          string  `json:"composition"`
	Description          string  `json:"description"`
	SideEffects          string  `json:"side_effects,omitempty"`
	DrugInteractions     string  `json:"drug_interactions,omitempty"`
	Category             string  `json:"category"`
	DosageForm           string  `json:"dosage_form"`
	Strength             string  `json:"strength"`
	PackageSize          string  `json:"package_size,omitempty"`
	PrescriptionRequired bool    `json:"prescription_required"`
}

// Prescription
type PrescriptionItem struct {
	Medicine     Medicine `json:"medicine"`
	Dosage       string   `json:"dosage"`
	Frequency    string   `json:"frequency"`
	Duration     string   `json:"duration"`
	Instructions string   `json:"instructions"`
	Timing       string   `json:"timing"`
}

type PatientDetails struct {
	Name       string `json:"name,omitempty"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"blood_group,omitempty"`
	Language   string `json:"language,omitempty"` // en, hi
}

type Prescription struct {
	ID           string             `json:"id"` // time based, not a primary key
	PatientName  string             `json:"patient_name"`
	Age          int                `json:"age"`
	Gender       string             `json:"gender"`
	BloodGroup   string             `json:"blood_group,omitempty"`
	Date         time.Time          `json:"date"`
	Diagnosis    string             `json:"diagnosis"`
	Severity     Severity           `json:"severity"`
	Symptoms     []SymptomTag       `json:"symptoms"`
	Medications  []PrescriptionItem `json:"medications"`
	Instructions []string           `json:"instructions"`
	DoctorName   string             `json:"doctor_name"`
	ClinicName   string             `json:"clinic_name"`
}

// Consultation boundary
type ConsultationRequest struct {
	Text           string         `json:"text"`
	PatientDetails PatientDetails `json:"patient_details"`
}

type ConsultationResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Symptoms     []SymptomTag  `json:"symptoms"`
	Prediction   *Prediction   `json:"prediction"`
	Medicines    []Medicine    `json:"medicines"`
	Prescription *Prescription `json:"prescription"`
	Advice       string        `json:"advice"`
	CreatedAt    time.Time     `json:"created_at"`
}
