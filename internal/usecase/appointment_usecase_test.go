package usecase

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/service"
)

// heldSlotLocker simulates a lock already held by a concurrent booking.
type heldSlotLocker struct{}

func (heldSlotLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return service.ErrSlotLocked
}

func bookRequest() *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		SocialSecurityNumber: "12345678901",
		FirstName:            "Anna",
		LastName:             "Papadopoulou",
		AppointmentDate:      "2026-09-15",
		AppointmentTime:      "10:30",
		Reason:               "Checkup",
		DoctorName:           "John Smith",
	}
}

// Losing the slot lock is the same observable outcome as losing the
// conflict check: the slot is taken.
func TestBook_LockContentionMapsToSlotUnavailable(t *testing.T) {
	uc := NewAppointmentUsecase(nil, logrus.New(), nil, nil, heldSlotLocker{})

	_, err := uc.Book(context.Background(), bookRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBook_RejectsBadDateAndTimeFormats(t *testing.T) {
	uc := NewAppointmentUsecase(nil, logrus.New(), nil, nil, heldSlotLocker{})

	req := bookRequest()
	req.AppointmentDate = "15/09/2026"
	_, err := uc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	req = bookRequest()
	req.AppointmentTime = "10.30"
	_, err = uc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
