package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
}
