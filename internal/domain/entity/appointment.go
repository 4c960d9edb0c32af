package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusCreated   AppointmentStatus = "Created"
	StatusKept      AppointmentStatus = "Kept"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// IsValid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusKept, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked doctor appointment. Date and time are
// kept as separate fields, and the doctor is referenced by denormalized
// name string for compatibility with the legacy data model.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentCode string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"appointment_code"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date            time.Time         `gorm:"type:date;not null" json:"date"`
	Time            string            `gorm:"type:varchar(5);not null" json:"time"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	DoctorName      string            `gorm:"type:varchar(255);not null;index" json:"doctor_name"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Created'" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Cancel moves the appointment to Cancelled. Cancelling an already
// cancelled appointment is a no-op.
func (a *Appointment) Cancel() {
	a.Status = StatusCancelled
}

// CanDelete reports whether the record may be physically removed.
// Only Cancelled appointments may be deleted.
func (a *Appointment) CanDelete() bool {
	return a.Status == StatusCancelled
}
