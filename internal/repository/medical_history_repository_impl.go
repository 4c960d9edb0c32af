package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
	domainRepo "github.com/kliniki/clinic-api/internal/domain/repository"
)

type medicalHistoryRepository struct{}

func NewMedicalHistoryRepository() domainRepo.MedicalHistoryRepository {
	return &medicalHistoryRepository{}
}

func (r *medicalHistoryRepository) Create(db *gorm.DB, history *entity.MedicalHistory) error {
	return db.Create(history).Error
}

func (r *medicalHistoryRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalHistory, error) {
	var histories []entity.MedicalHistory
	err := db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *medicalHistoryRepository) FindLatestBySSN(db *gorm.DB, ssn string) (*entity.MedicalHistory, error) {
	var history entity.MedicalHistory
	err := db.Where("social_security_number = ?", ssn).Order("created_at DESC").First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *medicalHistoryRepository) Save(db *gorm.DB, history *entity.MedicalHistory) error {
	return db.Save(history).Error
}

func (r *medicalHistoryRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.MedicalHistory{}).Error
}
