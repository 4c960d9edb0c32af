package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kliniki/clinic-api/internal/domain/entity"
	domainRepo "github.com/kliniki/clinic-api/internal/domain/repository"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindBySSN(db *gorm.DB, ssn string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("social_security_number = ?", ssn).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// FindOrCreate is the constraint-protected upsert on the booking path.
// Two concurrent calls with the same unseen SSN both reach the insert.
// The caller may hold an open transaction, so the duplicate must not be
// raised as a unique violation: on Postgres that aborts the whole
// transaction and the recovery read would fail. ON CONFLICT DO NOTHING
// swallows the conflict at statement level; the loser then resolves the
// winner's row by re-reading.
func (r *patientRepository) FindOrCreate(db *gorm.DB, ssn, firstName, lastName string) (*entity.Patient, error) {
	existing, err := r.FindBySSN(db, ssn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	patient := &entity.Patient{
		SocialSecurityNumber: ssn,
		FirstName:            firstName,
		LastName:             lastName,
	}
	res := db.Clauses(patientInsertConflict()).Create(patient)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return patient, nil
	}

	winner, err := r.FindBySSN(db, ssn)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, fmt.Errorf("patient with SSN %s missing after insert conflict", ssn)
	}
	return winner, nil
}

func patientInsertConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "social_security_number"}},
		DoNothing: true,
	}
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("date_of_registration DESC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Save(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Patient{}).Error
}
