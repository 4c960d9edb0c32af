package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/domain/repository"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrMissingCSVColumn = errors.New("CSV file is missing a required column")
)

var ssnFormat = regexp.MustCompile(`^[0-9]{11}$`)

type PatientUsecase interface {
	FindOrCreate(ctx context.Context, ssn, firstName, lastName string) (*dto.PatientResponse, error)
	Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context) (*dto.PatientListResponse, error)
	Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, patientID uuid.UUID) error
	ImportCSV(ctx context.Context, file io.Reader) (*dto.PatientImportResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

// FindOrCreate is the identity directory operation: resolve a patient by
// national identifier, creating the record on first sight. The storage
// layer's unique constraint makes concurrent calls converge on one record.
func (u *patientUsecase) FindOrCreate(ctx context.Context, ssn, firstName, lastName string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindOrCreate(u.db.WithContext(ctx), ssn, firstName, lastName)
	if err != nil {
		u.log.Warnf("Failed to resolve patient %s: %+v", ssn, err)
		return nil, err
	}
	return patientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *patientToResponse(&patients[i])
	}
	return &dto.PatientListResponse{Patients: responses, Total: len(responses)}, nil
}

// Update changes name fields only; the SSN and registration timestamp are
// immutable after creation.
func (u *patientUsecase) Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}

	if err := u.patientRepo.Save(u.db.WithContext(ctx), patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}
	return patientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(u.db.WithContext(ctx), patientID); err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", patientID, err)
		return err
	}
	return nil
}

// ImportCSV ingests a ';'-separated CSV with firstname, lastname and
// socialSecurityNumber columns. Each row is written as it is read;
// invalid rows and duplicate SSNs are skipped and logged so a bad row
// never aborts the stream.
func (u *patientUsecase) ImportCSV(ctx context.Context, file io.Reader) (*dto.PatientImportResponse, error) {
	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	firstCol := findColumn(header, "firstname")
	lastCol := findColumn(header, "lastname")
	ssnCol := findColumn(header, "socialSecurityNumber")
	if firstCol < 0 || lastCol < 0 || ssnCol < 0 {
		return nil, ErrMissingCSVColumn
	}

	result := &dto.PatientImportResponse{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			u.log.Warnf("Skipping malformed CSV row: %+v", err)
			result.Skipped++
			continue
		}

		row, ok := parsePatientRow(record, firstCol, lastCol, ssnCol)
		if !ok {
			u.log.Warnf("Skipping invalid patient row: %v", record)
			result.Skipped++
			continue
		}

		existing, err := u.patientRepo.FindBySSN(u.db.WithContext(ctx), row.SocialSecurityNumber)
		if err != nil {
			u.log.Warnf("Failed to check SSN %s: %+v", row.SocialSecurityNumber, err)
			result.Skipped++
			continue
		}
		if existing != nil {
			u.log.Warnf("Skipping duplicate SSN: %s", row.SocialSecurityNumber)
			result.Skipped++
			continue
		}

		if err := u.patientRepo.Create(u.db.WithContext(ctx), row); err != nil {
			u.log.Warnf("Failed to save patient %s: %+v", row.SocialSecurityNumber, err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	u.log.Infof("Patient CSV import: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

// parsePatientRow validates one CSV record and builds the patient to insert.
func parsePatientRow(record []string, firstCol, lastCol, ssnCol int) (*entity.Patient, bool) {
	maxCol := firstCol
	if lastCol > maxCol {
		maxCol = lastCol
	}
	if ssnCol > maxCol {
		maxCol = ssnCol
	}
	if maxCol >= len(record) {
		return nil, false
	}

	first := record[firstCol]
	last := record[lastCol]
	ssn := record[ssnCol]
	if first == "" || last == "" || !ssnFormat.MatchString(ssn) {
		return nil, false
	}

	return &entity.Patient{
		FirstName:            first,
		LastName:             last,
		SocialSecurityNumber: ssn,
	}, true
}

func patientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:                   patient.ID,
		SocialSecurityNumber: patient.SocialSecurityNumber,
		FirstName:            patient.FirstName,
		LastName:             patient.LastName,
		DateOfRegistration:   patient.DateOfRegistration,
	}
}
