package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,alpha"`
	LastName  string `json:"lastName" validate:"omitempty,alpha"`
}

// Response DTOs

type PatientResponse struct {
	ID                   uuid.UUID `json:"id"`
	SocialSecurityNumber string    `json:"social_security_number"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	DateOfRegistration   time.Time `json:"date_of_registration"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type PatientImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
