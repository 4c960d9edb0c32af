package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

type MedicalHistoryRepository interface {
	Create(db *gorm.DB, history *entity.MedicalHistory) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalHistory, error)
	// FindLatestBySSN returns the most recent history entry for the
	// patient, or nil when the patient has none.
	FindLatestBySSN(db *gorm.DB, ssn string) (*entity.MedicalHistory, error)
	Save(db *gorm.DB, history *entity.MedicalHistory) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
