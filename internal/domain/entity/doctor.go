package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a doctor record. Doctors are immutable once created;
// there is no update path.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100);not null" json:"specialty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Slots []AvailabilitySlot `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
