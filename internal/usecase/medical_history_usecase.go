package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/domain/repository"
)

var (
	ErrHistoryNotFound  = errors.New("medical history record not found")
	ErrNoFieldsToUpdate = errors.New("at least one field is required to update")
)

type MedicalHistoryUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalHistoryListResponse, error)
	GetLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error)
	UpdateLatest(ctx context.Context, ssn string, req *dto.UpdateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error)
	DeleteLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error)
	ImportCSV(ctx context.Context, file io.Reader) (*dto.MedicalHistoryImportResponse, error)
}

type medicalHistoryUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	historyRepo repository.MedicalHistoryRepository
	patientRepo repository.PatientRepository
}

func NewMedicalHistoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	historyRepo repository.MedicalHistoryRepository,
	patientRepo repository.PatientRepository,
) MedicalHistoryUsecase {
	return &medicalHistoryUsecase{
		db:          db,
		log:         log,
		historyRepo: historyRepo,
		patientRepo: patientRepo,
	}
}

// Create records a new history entry for an existing patient. Unlike
// booking, histories never create the patient: an unknown SSN is an
// error.
func (u *medicalHistoryUsecase) Create(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
	patient, err := u.patientRepo.FindBySSN(u.db.WithContext(ctx), req.SocialSecurityNumber)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.SocialSecurityNumber, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	history := &entity.MedicalHistory{
		PatientID:              patient.ID,
		SocialSecurityNumber:   req.SocialSecurityNumber,
		DetectedHealthProblems: req.DetectedHealthProblems,
		Treatment:              req.Treatment,
	}
	if err := u.historyRepo.Create(u.db.WithContext(ctx), history); err != nil {
		u.log.Warnf("Failed to create medical history for %s: %+v", req.SocialSecurityNumber, err)
		return nil, err
	}

	u.log.Infof("Medical history created: id=%s, patient=%s", history.ID, patient.ID)
	return historyToResponse(history), nil
}

func (u *medicalHistoryUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalHistoryListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	histories, err := u.historyRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list histories for patient %s: %+v", patientID, err)
		return nil, err
	}

	responses := make([]dto.MedicalHistoryResponse, len(histories))
	for i := range histories {
		responses[i] = *historyToResponse(&histories[i])
	}
	return &dto.MedicalHistoryListResponse{Histories: responses, Total: len(responses)}, nil
}

func (u *medicalHistoryUsecase) GetLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error) {
	history, err := u.findLatest(ctx, ssn)
	if err != nil {
		return nil, err
	}
	return historyToResponse(history), nil
}

// UpdateLatest applies a partial update to the patient's most recent
// history entry.
func (u *medicalHistoryUsecase) UpdateLatest(ctx context.Context, ssn string, req *dto.UpdateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
	if req.DetectedHealthProblems == "" && req.Treatment == "" {
		return nil, ErrNoFieldsToUpdate
	}

	history, err := u.findLatest(ctx, ssn)
	if err != nil {
		return nil, err
	}

	if req.DetectedHealthProblems != "" {
		history.DetectedHealthProblems = req.DetectedHealthProblems
	}
	if req.Treatment != "" {
		history.Treatment = req.Treatment
	}

	if err := u.historyRepo.Save(u.db.WithContext(ctx), history); err != nil {
		u.log.Warnf("Failed to update medical history %s: %+v", history.ID, err)
		return nil, err
	}
	return historyToResponse(history), nil
}

// DeleteLatest removes the patient's most recent history entry and
// returns the removed record.
func (u *medicalHistoryUsecase) DeleteLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error) {
	history, err := u.findLatest(ctx, ssn)
	if err != nil {
		return nil, err
	}

	if err := u.historyRepo.Delete(u.db.WithContext(ctx), history.ID); err != nil {
		u.log.Warnf("Failed to delete medical history %s: %+v", history.ID, err)
		return nil, err
	}

	u.log.Infof("Medical history deleted: id=%s, ssn=%s", history.ID, ssn)
	return historyToResponse(history), nil
}

// ImportCSV ingests a ';'-separated CSV with socialSecurityNumber,
// detectedHealthProblems and treatment columns. Rows referencing unknown
// patients are skipped and logged, like invalid rows; a bad row never
// aborts the stream.
func (u *medicalHistoryUsecase) ImportCSV(ctx context.Context, file io.Reader) (*dto.MedicalHistoryImportResponse, error) {
	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	ssnCol := findColumn(header, "socialSecurityNumber")
	problemsCol := findColumn(header, "detectedHealthProblems")
	treatmentCol := findColumn(header, "treatment")
	if ssnCol < 0 || problemsCol < 0 || treatmentCol < 0 {
		return nil, ErrMissingCSVColumn
	}

	result := &dto.MedicalHistoryImportResponse{}
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

		row, ok := parseHistoryRow(record, ssnCol, problemsCol, treatmentCol)
		if !ok {
			u.log.Warnf("Skipping invalid history row: %v", record)
			result.Skipped++
			continue
		}

		patient, err := u.patientRepo.FindBySSN(u.db.WithContext(ctx), row.SocialSecurityNumber)
		if err != nil {
			u.log.Warnf("Failed to check SSN %s: %+v", row.SocialSecurityNumber, err)
			result.Skipped++
			continue
		}
		if patient == nil {
			u.log.Warnf("Skipping history for unknown patient: %s", row.SocialSecurityNumber)
			result.Skipped++
			continue
		}
		row.PatientID = patient.ID

		if err := u.historyRepo.Create(u.db.WithContext(ctx), row); err != nil {
			u.log.Warnf("Failed to save history for %s: %+v", row.SocialSecurityNumber, err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	u.log.Infof("Medical history CSV import: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

// findLatest resolves the patient by SSN and loads the most recent
// history entry.
func (u *medicalHistoryUsecase) findLatest(ctx context.Context, ssn string) (*entity.MedicalHistory, error) {
	patient, err := u.patientRepo.FindBySSN(u.db.WithContext(ctx), ssn)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", ssn, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	history, err := u.historyRepo.FindLatestBySSN(u.db.WithContext(ctx), ssn)
	if err != nil {
		u.log.Warnf("Failed to load history for %s: %+v", ssn, err)
		return nil, err
	}
	if history == nil {
		return nil, ErrHistoryNotFound
	}
	return history, nil
}

// parseHistoryRow validates one CSV record and builds the history entry
// to insert. The patient id is resolved by the caller.
func parseHistoryRow(record []string, ssnCol, problemsCol, treatmentCol int) (*entity.MedicalHistory, bool) {
	maxCol := ssnCol
	if problemsCol > maxCol {
		maxCol = problemsCol
	}
	if treatmentCol > maxCol {
		maxCol = treatmentCol
	}
	if maxCol >= len(record) {
		return nil, false
	}

	ssn := record[ssnCol]
	problems := record[problemsCol]
	treatment := record[treatmentCol]
	if problems == "" || treatment == "" || !ssnFormat.MatchString(ssn) {
		return nil, false
	}

	return &entity.MedicalHistory{
		SocialSecurityNumber:   ssn,
		DetectedHealthProblems: problems,
		Treatment:              treatment,
	}, true
}

func historyToResponse(history *entity.MedicalHistory) *dto.MedicalHistoryResponse {
	return &dto.MedicalHistoryResponse{
		ID:                     history.ID,
		PatientID:              history.PatientID,
		SocialSecurityNumber:   history.SocialSecurityNumber,
		DetectedHealthProblems: history.DetectedHealthProblems,
		Treatment:              history.Treatment,
		CreatedAt:              history.CreatedAt,
	}
}
