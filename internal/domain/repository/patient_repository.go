package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindBySSN(db *gorm.DB, ssn string) (*entity.Patient, error)
	// FindOrCreate resolves a patient by social security number, creating
	// the record if absent. The insert is protected by the unique
	// constraint on the SSN: a concurrent insert of the same SSN is
	// swallowed at statement level and resolved by re-reading, so two
	// racing calls return the same record and neither aborts an open
	// transaction it was called in.
	FindOrCreate(db *gorm.DB, ssn, firstName, lastName string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	Save(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
