package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SlotBatchRequest struct {
	Slots []string `json:"slots" validate:"required,min=1"`
}

// Response DTOs

type AvailabilityResponse struct {
	DoctorID uuid.UUID   `json:"doctor_id"`
	Slots    []time.Time `json:"slots"`
	Total    int         `json:"total"`
}

type SlotImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
