package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

type AvailabilityRepository interface {
	InsertSlots(db *gorm.DB, slots []entity.AvailabilitySlot) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
	// FindByDoctorID returns the doctor's slots in insertion order.
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error)
}
