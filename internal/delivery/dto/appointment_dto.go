package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	SocialSecurityNumber string `json:"socialSecurityNumber" validate:"required,ssn"`
	FirstName            string `json:"firstName" validate:"required,alpha"`
	LastName             string `json:"lastName" validate:"required,alpha"`
	AppointmentDate      string `json:"appointmentDate" validate:"required"` // Format: YYYY-MM-DD
	AppointmentTime      string `json:"appointmentTime" validate:"required"` // Format: HH:MM
	Reason               string `json:"reason" validate:"required"`
	DoctorName           string `json:"doctorName" validate:"required,alpha_space"`
}

type RescheduleAppointmentRequest struct {
	Date   string `json:"date" validate:"omitempty"`   // Format: YYYY-MM-DD
	Time   string `json:"time" validate:"omitempty"`   // Format: HH:MM
	Status string `json:"status" validate:"omitempty"` // Created | Kept | Completed | Cancelled
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	AppointmentCode string    `json:"appointment_code"`
	PatientID       uuid.UUID `json:"patient_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Reason          string    `json:"reason"`
	DoctorName      string    `json:"doctor_name"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
