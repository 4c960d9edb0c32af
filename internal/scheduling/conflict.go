// Package scheduling holds the pure decision logic for appointment
// scheduling: the slot conflict predicate and the status transition table.
// Both the booking and rescheduling paths use this package, backed at the
// storage layer by a partial unique index on active (doctor, date, time).
package scheduling

import (
	"github.com/google/uuid"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

// IsSlotFree reports whether the slot described by existing is free.
// The caller passes every appointment already stored for the requested
// (doctor name, date, time) tuple. Cancelled appointments do not occupy
// their slot. excludeID skips the appointment being rescheduled so a
// record never conflicts with itself; pass uuid.Nil for new bookings.
func IsSlotFree(existing []entity.Appointment, excludeID uuid.UUID) bool {
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Status != entity.StatusCancelled {
			return false
		}
	}
	return true
}

// CanTransition reports whether an appointment may move from one status to
// another. Any active status may move to Cancelled; Cancelled is terminal
// (it may only be deleted, never reactivated). Keeping the current status
// is always allowed so partial updates can echo it back.
func CanTransition(from, to entity.AppointmentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case entity.StatusCreated:
		return to == entity.StatusKept || to == entity.StatusCompleted || to == entity.StatusCancelled
	case entity.StatusKept:
		return to == entity.StatusCompleted || to == entity.StatusCancelled
	case entity.StatusCompleted:
		return to == entity.StatusCancelled
	case entity.StatusCancelled:
		return false
	}
	return false
}
