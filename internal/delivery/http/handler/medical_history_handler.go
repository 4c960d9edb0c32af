package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/usecase"
	"github.com/kliniki/clinic-api/pkg/response"
	"github.com/kliniki/clinic-api/pkg/validator"
)

type MedicalHistoryHandler struct {
	historyUsecase usecase.MedicalHistoryUsecase
	validator      *validator.CustomValidator
}

func NewMedicalHistoryHandler(historyUsecase usecase.MedicalHistoryUsecase, validator *validator.CustomValidator) *MedicalHistoryHandler {
	return &MedicalHistoryHandler{
		historyUsecase: historyUsecase,
		validator:      validator,
	}
}

func (h *MedicalHistoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	history, err := h.historyUsecase.Create(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found. Please check your social security number!")
			return
		}
		response.InternalServerError(w, "Failed to create medical history")
		return
	}

	response.Success(w, http.StatusCreated, "Medical history created successfully", history)
}

func (h *MedicalHistoryHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["patientId"])
	if err != nil {
		response.NotFound(w, "Patient not found")
		return
	}

	histories, err := h.historyUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to list medical histories")
		return
	}

	response.Success(w, http.StatusOK, "Medical histories retrieved successfully", histories)
}

func (h *MedicalHistoryHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyUsecase.GetLatest(r.Context(), mux.Vars(r)["ssn"])
	if err != nil {
		h.mapHistoryError(w, err, "Failed to get medical history")
		return
	}

	response.Success(w, http.StatusOK, "Medical history retrieved successfully", history)
}

func (h *MedicalHistoryHandler) UpdateLatest(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMedicalHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	history, err := h.historyUsecase.UpdateLatest(r.Context(), mux.Vars(r)["ssn"], &req)
	if err != nil {
		if err == usecase.ErrNoFieldsToUpdate {
			response.Error(w, http.StatusBadRequest, "At least one field is required to update.", nil)
			return
		}
		h.mapHistoryError(w, err, "Failed to update medical history")
		return
	}

	response.Success(w, http.StatusOK, "Medical history updated successfully", history)
}

func (h *MedicalHistoryHandler) DeleteLatest(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyUsecase.DeleteLatest(r.Context(), mux.Vars(r)["ssn"])
	if err != nil {
		h.mapHistoryError(w, err, "Failed to delete medical history")
		return
	}

	response.Success(w, http.StatusOK, "Most recent history record has been deleted", history)
}

func (h *MedicalHistoryHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	defer file.Close()

	result, err := h.historyUsecase.ImportCSV(r.Context(), file)
	if err != nil {
		if err == usecase.ErrMissingCSVColumn {
			response.Error(w, http.StatusBadRequest, "CSV file is missing a required column", nil)
			return
		}
		response.InternalServerError(w, "Failed to process CSV file")
		return
	}

	response.Success(w, http.StatusOK, "File successfully uploaded and patient history saved", result)
}

func (h *MedicalHistoryHandler) mapHistoryError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrHistoryNotFound:
		response.NotFound(w, "No history records found for the patient")
	default:
		response.InternalServerError(w, fallback)
	}
}
