package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/domain/repository"
	"github.com/kliniki/clinic-api/internal/infrastructure/database"
	"github.com/kliniki/clinic-api/internal/scheduling"
	"github.com/kliniki/clinic-api/internal/service"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("the doctor is not available at the requested time")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrNotCancelled        = errors.New("appointment can only be deleted if it is in 'Cancelled' status")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, appointmentID uuid.UUID) error
	Get(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	locker          service.SlotLocker
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	locker service.SlotLocker,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		locker:          locker,
	}
}

// Book creates an appointment with status Created.
//
// Flow:
// 1. Parse and validate date/time formats
// 2. Acquire the per-slot lock so concurrent bookings of the same slot
//    are serialized
// 3. Resolve or create the patient by SSN inside the transaction
// 4. Run the conflict check against existing appointments for the slot
// 5. Insert; a unique violation on the active-slot index means another
//    booking won the race and maps to ErrSlotUnavailable
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.AppointmentTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	var appointment *entity.Appointment

	lockKey := service.SlotLockKey(req.DoctorName, req.AppointmentDate, req.AppointmentTime)
	err = u.locker.WithLock(ctx, lockKey, func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		patient, err := u.patientRepo.FindOrCreate(tx, req.SocialSecurityNumber, req.FirstName, req.LastName)
		if err != nil {
			u.log.Warnf("Failed to resolve patient %s: %+v", req.SocialSecurityNumber, err)
			return err
		}

		existing, err := u.appointmentRepo.FindBySlot(tx, req.DoctorName, date, req.AppointmentTime)
		if err != nil {
			u.log.Warnf("Failed to load slot appointments: %+v", err)
			return err
		}
		if !scheduling.IsSlotFree(existing, uuid.Nil) {
			return ErrSlotUnavailable
		}

		appointment = &entity.Appointment{
			AppointmentCode: uuid.NewString(),
			PatientID:       patient.ID,
			Date:            date,
			Time:            req.AppointmentTime,
			Reason:          req.Reason,
			DoctorName:      req.DoctorName,
			Status:          entity.StatusCreated,
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			if database.IsUniqueViolation(err, "active_slot") {
				return ErrSlotUnavailable
			}
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		return tx.Commit().Error
	})
	if err != nil {
		if errors.Is(err, service.ErrSlotLocked) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, time=%s",
		appointment.ID, appointment.DoctorName, req.AppointmentDate, req.AppointmentTime)
	return appointmentToResponse(appointment), nil
}

// Reschedule applies a partial update. If date or time change, the
// conflict check runs excluding the appointment's own id; a status change
// must be a legal lifecycle transition.
func (u *appointmentUsecase) Reschedule(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	newDate := appointment.Date
	newTime := appointment.Time
	slotChanged := false

	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		if !parsed.Equal(appointment.Date) {
			slotChanged = true
		}
		newDate = parsed
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if req.Time != appointment.Time {
			slotChanged = true
		}
		newTime = req.Time
	}

	if slotChanged {
		existing, err := u.appointmentRepo.FindBySlot(tx, appointment.DoctorName, newDate, newTime)
		if err != nil {
			u.log.Warnf("Failed to load slot appointments: %+v", err)
			return nil, err
		}
		if !scheduling.IsSlotFree(existing, appointment.ID) {
			return nil, ErrSlotUnavailable
		}
	}

	if req.Status != "" {
		newStatus := entity.AppointmentStatus(req.Status)
		if !newStatus.IsValid() {
			return nil, ErrInvalidStatus
		}
		if !scheduling.CanTransition(appointment.Status, newStatus) {
			return nil, ErrInvalidTransition
		}
		appointment.Status = newStatus
	}

	appointment.Date = newDate
	appointment.Time = newTime

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		if database.IsUniqueViolation(err, "active_slot") {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return appointmentToResponse(appointment), nil
}

// Cancel sets the status to Cancelled regardless of the current status.
// Cancelling an already cancelled appointment is a no-op success.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.IsCancelled() {
		appointment.Cancel()
		if err := u.appointmentRepo.Save(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
			return nil, err
		}
		u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	}

	return appointmentToResponse(appointment), nil
}

// Delete physically removes an appointment, allowed only from Cancelled.
func (u *appointmentUsecase) Delete(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !appointment.CanDelete() {
		return ErrNotCancelled
	}

	if err := u.appointmentRepo.Delete(u.db.WithContext(ctx), appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", appointmentID)
	return nil
}

func (u *appointmentUsecase) Get(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return appointmentToResponse(appointment), nil
}

func appointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		AppointmentCode: appointment.AppointmentCode,
		PatientID:       appointment.PatientID,
		Date:            appointment.Date.Format("2006-01-02"),
		Time:            appointment.Time,
		Reason:          appointment.Reason,
		DoctorName:      appointment.DoctorName,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
	}
}
