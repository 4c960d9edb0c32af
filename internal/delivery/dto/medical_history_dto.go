package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalHistoryRequest struct {
	SocialSecurityNumber   string `json:"socialSecurityNumber" validate:"required,ssn"`
	DetectedHealthProblems string `json:"detectedHealthProblems" validate:"required"`
	Treatment              string `json:"treatment" validate:"required"`
}

// UpdateMedicalHistoryRequest is a partial update; at least one field
// must be set.
type UpdateMedicalHistoryRequest struct {
	DetectedHealthProblems string `json:"detectedHealthProblems"`
	Treatment              string `json:"treatment"`
}

// Response DTOs

type MedicalHistoryResponse struct {
	ID                     uuid.UUID `json:"id"`
	PatientID              uuid.UUID `json:"patient_id"`
	SocialSecurityNumber   string    `json:"social_security_number"`
	DetectedHealthProblems string    `json:"detected_health_problems"`
	Treatment              string    `json:"treatment"`
	CreatedAt              time.Time `json:"created_at"`
}

type MedicalHistoryListResponse struct {
	Histories []MedicalHistoryResponse `json:"histories"`
	Total     int                      `json:"total"`
}

type MedicalHistoryImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
