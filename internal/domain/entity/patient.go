package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient record. Patients are looked up and
// deduplicated by social security number, never by surrogate id, on the
// booking path. DateOfRegistration is set once at creation.
type Patient struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SocialSecurityNumber string    `gorm:"type:char(11);uniqueIndex:uq_patients_ssn;not null" json:"social_security_number"`
	FirstName            string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName             string    `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfRegistration   time.Time `gorm:"autoCreateTime" json:"date_of_registration"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
