package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/usecase"
	"github.com/kliniki/clinic-api/pkg/validator"
)

type stubHistoryUsecase struct {
	createFn func(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error)
	updateFn func(ctx context.Context, ssn string, req *dto.UpdateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error)
	getFn    func(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error)
}

func (s *stubHistoryUsecase) Create(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubHistoryUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalHistoryListResponse, error) {
	return nil, nil
}

func (s *stubHistoryUsecase) GetLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error) {
	return s.getFn(ctx, ssn)
}

func (s *stubHistoryUsecase) UpdateLatest(ctx context.Context, ssn string, req *dto.UpdateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
	return s.updateFn(ctx, ssn, req)
}

func (s *stubHistoryUsecase) DeleteLatest(ctx context.Context, ssn string) (*dto.MedicalHistoryResponse, error) {
	return nil, nil
}

func (s *stubHistoryUsecase) ImportCSV(ctx context.Context, file io.Reader) (*dto.MedicalHistoryImportResponse, error) {
	return nil, nil
}

func TestCreateMedicalHistory_UnknownPatient(t *testing.T) {
	h := NewMedicalHistoryHandler(&stubHistoryUsecase{
		createFn: func(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
			return nil, usecase.ErrPatientNotFound
		},
	}, validator.NewValidator())

	body, _ := json.Marshal(map[string]string{
		"socialSecurityNumber":   "12345678901",
		"detectedHealthProblems": "Hypertension",
		"treatment":              "Lisinopril 10mg",
	})
	req := httptest.NewRequest(http.MethodPost, "/medhistories", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Patient not found. Please check your social security number!", decodeBody(t, rec).Message)
}

func TestCreateMedicalHistory_ValidationFailure(t *testing.T) {
	h := NewMedicalHistoryHandler(&stubHistoryUsecase{
		createFn: func(ctx context.Context, req *dto.CreateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	}, validator.NewValidator())

	body, _ := json.Marshal(map[string]string{
		"socialSecurityNumber": "12345678901",
		"treatment":            "Lisinopril 10mg",
	})
	req := httptest.NewRequest(http.MethodPost, "/medhistories", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeBody(t, rec).Message)
}

func TestUpdateMedicalHistory_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"no fields", usecase.ErrNoFieldsToUpdate, http.StatusBadRequest, "At least one field is required to update."},
		{"unknown patient", usecase.ErrPatientNotFound, http.StatusNotFound, "Patient not found"},
		{"no history", usecase.ErrHistoryNotFound, http.StatusNotFound, "No history records found for the patient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMedicalHistoryHandler(&stubHistoryUsecase{
				updateFn: func(ctx context.Context, ssn string, req *dto.UpdateMedicalHistoryRequest) (*dto.MedicalHistoryResponse, error) {
					return nil, tt.err
				},
			}, validator.NewValidator())

			body, _ := json.Marshal(map[string]string{"treatment": "Updated"})
			req := httptest.NewRequest(http.MethodPatch, "/medhistories/registrations/12345678901", bytes.NewReader(body))
			req = mux.SetURLVars(req, map[string]string{"ssn": "12345678901"})
			rec := httptest.NewRecorder()

			h.UpdateLatest(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rec).Message)
		})
	}
}
