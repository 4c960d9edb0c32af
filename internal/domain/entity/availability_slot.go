package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a single point in time at which a doctor declares
// availability. Slots carry no status: they describe open time, not
// bookings, and are never consumed when an appointment is made.
type AvailabilitySlot struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotAt   time.Time `gorm:"not null" json:"slot_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}
