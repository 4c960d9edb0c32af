package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
	domainRepo "github.com/kliniki/clinic-api/internal/domain/repository"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) InsertSlots(db *gorm.DB, slots []entity.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}
	return db.Create(&slots).Error
}

func (r *availabilityRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilitySlot{}).Error
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	// id order is insertion order; slots are not guaranteed chronological
	err := db.Where("doctor_id = ?", doctorID).Order("id ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
