package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory is one clinical entry in a patient's record: the
// problems detected at a visit and the prescribed treatment. The SSN is
// carried denormalized next to the patient id because the record
// management endpoints address histories by SSN.
type MedicalHistory struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID              uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	SocialSecurityNumber   string    `gorm:"type:char(11);not null;index" json:"social_security_number"`
	DetectedHealthProblems string    `gorm:"type:text;not null" json:"detected_health_problems"`
	Treatment              string    `gorm:"type:text;not null" json:"treatment"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}
