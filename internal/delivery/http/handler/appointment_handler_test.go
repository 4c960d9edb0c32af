package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/usecase"
	"github.com/kliniki/clinic-api/pkg/response"
	"github.com/kliniki/clinic-api/pkg/validator"
)

type stubAppointmentUsecase struct {
	bookFn       func(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	rescheduleFn func(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	cancelFn     func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	getFn        func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
}

func (s *stubAppointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.bookFn(ctx, req)
}

func (s *stubAppointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.rescheduleFn(ctx, id, req)
}

func (s *stubAppointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.cancelFn(ctx, id)
}

func (s *stubAppointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubAppointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.getFn(ctx, id)
}

func newAppointmentHandler(t *testing.T, uc usecase.AppointmentUsecase) *AppointmentHandler {
	t.Helper()
	return NewAppointmentHandler(uc, validator.NewValidator())
}

func validBookBody() []byte {
	body, _ := json.Marshal(map[string]string{
		"socialSecurityNumber": "12345678901",
		"firstName":            "Anna",
		"lastName":             "Papadopoulou",
		"appointmentDate":      "2026-09-15",
		"appointmentTime":      "10:30",
		"reason":               "Checkup",
		"doctorName":           "John Smith",
	})
	return body
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestBook_Success(t *testing.T) {
	uc := &stubAppointmentUsecase{
		bookFn: func(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:         uuid.New(),
				DoctorName: req.DoctorName,
				Date:       req.AppointmentDate,
				Time:       req.AppointmentTime,
				Status:     "Created",
			}, nil
		},
	}
	h := newAppointmentHandler(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(validBookBody()))
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	res := decodeBody(t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, "Appointment booked successfully", res.Message)
}

func TestBook_ValidationFailure(t *testing.T) {
	h := newAppointmentHandler(t, &stubAppointmentUsecase{
		bookFn: func(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	body, _ := json.Marshal(map[string]string{
		"socialSecurityNumber": "123", // too short
		"firstName":            "Anna",
	})
	req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeBody(t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, "Validation failed", res.Message)
	assert.NotNil(t, res.Error)
}

func TestBook_SlotUnavailable(t *testing.T) {
	h := newAppointmentHandler(t, &stubAppointmentUsecase{
		bookFn: func(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrSlotUnavailable
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(validBookBody()))
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeBody(t, rec)
	assert.Equal(t, "The doctor is not available at the requested time.", res.Message)
}

func TestReschedule_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found"},
		{"slot taken", usecase.ErrSlotUnavailable, http.StatusBadRequest, "The doctor is not available at the requested time."},
		{"bad status", usecase.ErrInvalidStatus, http.StatusBadRequest, "Invalid appointment status"},
		{"bad transition", usecase.ErrInvalidTransition, http.StatusBadRequest, "Status transition not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(t, &stubAppointmentUsecase{
				rescheduleFn: func(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(map[string]string{"status": "Kept"})
			req := httptest.NewRequest(http.MethodPut, "/appointments/"+uuid.NewString(), bytes.NewReader(body))
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()

			h.Reschedule(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rec).Message)
		})
	}
}

func TestDelete_NotCancelled(t *testing.T) {
	h := newAppointmentHandler(t, &stubAppointmentUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return usecase.ErrNotCancelled
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/appointments/cancel/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Appointment can only be deleted if it is in 'Cancelled' status", decodeBody(t, rec).Message)
}

func TestGet_MalformedID(t *testing.T) {
	h := newAppointmentHandler(t, &stubAppointmentUsecase{
		getFn: func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Appointment not found", decodeBody(t, rec).Message)
}
