package scheduling

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

func appointmentWithStatus(status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		ID:         uuid.New(),
		DoctorName: "Nikos Papadopoulos",
		Time:       "10:00",
		Status:     status,
	}
}

func TestIsSlotFree_EmptySlot(t *testing.T) {
	assert.True(t, IsSlotFree(nil, uuid.Nil))
	assert.True(t, IsSlotFree([]entity.Appointment{}, uuid.Nil))
}

func TestIsSlotFree_ActiveAppointmentBlocks(t *testing.T) {
	for _, status := range []entity.AppointmentStatus{
		entity.StatusCreated,
		entity.StatusKept,
		entity.StatusCompleted,
	} {
		existing := []entity.Appointment{appointmentWithStatus(status)}
		assert.False(t, IsSlotFree(existing, uuid.Nil), "status %s should block the slot", status)
	}
}

func TestIsSlotFree_CancelledFreesSlot(t *testing.T) {
	existing := []entity.Appointment{appointmentWithStatus(entity.StatusCancelled)}
	assert.True(t, IsSlotFree(existing, uuid.Nil))
}

func TestIsSlotFree_MixedCancelledAndActive(t *testing.T) {
	existing := []entity.Appointment{
		appointmentWithStatus(entity.StatusCancelled),
		appointmentWithStatus(entity.StatusCreated),
	}
	assert.False(t, IsSlotFree(existing, uuid.Nil))
}

func TestIsSlotFree_SelfExclusion(t *testing.T) {
	appt := appointmentWithStatus(entity.StatusCreated)

	// Rescheduling to the appointment's own current slot must not report
	// a false conflict.
	assert.True(t, IsSlotFree([]entity.Appointment{appt}, appt.ID))

	other := appointmentWithStatus(entity.StatusCreated)
	assert.False(t, IsSlotFree([]entity.Appointment{appt, other}, appt.ID))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    entity.AppointmentStatus
		to      entity.AppointmentStatus
		allowed bool
	}{
		{entity.StatusCreated, entity.StatusKept, true},
		{entity.StatusCreated, entity.StatusCompleted, true},
		{entity.StatusCreated, entity.StatusCancelled, true},
		{entity.StatusKept, entity.StatusCompleted, true},
		{entity.StatusKept, entity.StatusCancelled, true},
		{entity.StatusKept, entity.StatusCreated, false},
		{entity.StatusCompleted, entity.StatusCancelled, true},
		{entity.StatusCompleted, entity.StatusKept, false},
		{entity.StatusCompleted, entity.StatusCreated, false},
		{entity.StatusCancelled, entity.StatusCreated, false},
		{entity.StatusCancelled, entity.StatusKept, false},
		{entity.StatusCancelled, entity.StatusCompleted, false},
		{entity.StatusCreated, entity.StatusCreated, true},
		{entity.StatusCancelled, entity.StatusCancelled, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
