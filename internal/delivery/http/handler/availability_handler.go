package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/usecase"
	"github.com/kliniki/clinic-api/pkg/response"
	"github.com/kliniki/clinic-api/pkg/validator"
)

// maxUploadSize bounds CSV uploads to 8 MiB.
const maxUploadSize = 8 << 20

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) AddSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	var req dto.SlotBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.AddSlots(r.Context(), doctorID, &req)
	if err != nil {
		h.mapSlotError(w, err, "Failed to save doctor availability")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor availability saved successfully", availability)
}

func (h *AvailabilityHandler) ReplaceSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	var req dto.SlotBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.ReplaceSlots(r.Context(), doctorID, &req)
	if err != nil {
		h.mapSlotError(w, err, "Failed to update doctor availability")
		return
	}

	response.Success(w, http.StatusOK, "Doctor availability updated successfully", availability)
}

func (h *AvailabilityHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	defer file.Close()

	result, err := h.availabilityUsecase.ImportSlotsCSV(r.Context(), doctorID, file)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrNoSlotsColumn:
			response.Error(w, http.StatusBadRequest, "CSV file has no 'slots' column", nil)
		default:
			response.InternalServerError(w, "Failed to process CSV file")
		}
		return
	}

	response.Success(w, http.StatusOK, "File successfully uploaded and doctor availability saved", result)
}

func (h *AvailabilityHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	availability, err := h.availabilityUsecase.ListSlots(r.Context(), doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to list doctor availability")
		return
	}

	response.Success(w, http.StatusOK, "Doctor availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) mapSlotError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case err == usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case err == usecase.ErrEmptySlots:
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
	case isInvalidSlotError(err):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func isInvalidSlotError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidSlot)
}

func (h *AvailabilityHandler) doctorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.NotFound(w, "Doctor not found")
		return uuid.Nil, false
	}
	return doctorID, true
}
