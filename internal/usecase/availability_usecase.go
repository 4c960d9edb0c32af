package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/domain/repository"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrEmptySlots     = errors.New("slots must be a non-empty list")
	ErrInvalidSlot    = errors.New("invalid slot datetime")
	ErrNoSlotsColumn  = errors.New("CSV file has no 'slots' column")
)

// slotLayouts are the datetime formats accepted for availability slots.
var slotLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

type AvailabilityUsecase interface {
	AddSlots(ctx context.Context, doctorID uuid.UUID, req *dto.SlotBatchRequest) (*dto.AvailabilityResponse, error)
	ReplaceSlots(ctx context.Context, doctorID uuid.UUID, req *dto.SlotBatchRequest) (*dto.AvailabilityResponse, error)
	ImportSlotsCSV(ctx context.Context, doctorID uuid.UUID, file io.Reader) (*dto.SlotImportResponse, error)
	ListSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	doctorRepo       repository.DoctorRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	doctorRepo repository.DoctorRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		doctorRepo:       doctorRepo,
	}
}

// AddSlots appends a batch of slots to the doctor's availability. The
// whole batch is validated before anything is written.
func (u *availabilityUsecase) AddSlots(ctx context.Context, doctorID uuid.UUID, req *dto.SlotBatchRequest) (*dto.AvailabilityResponse, error) {
	if err := u.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	slots, err := parseSlotBatch(doctorID, req.Slots)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.InsertSlots(tx, slots); err != nil {
		u.log.Warnf("Failed to insert slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.buildAvailability(ctx, doctorID)
}

// ReplaceSlots swaps the doctor's entire slot set. The operation is
// all-or-nothing: one unparseable element rejects the whole batch and no
// partial slot set is ever persisted.
func (u *availabilityUsecase) ReplaceSlots(ctx context.Context, doctorID uuid.UUID, req *dto.SlotBatchRequest) (*dto.AvailabilityResponse, error) {
	if err := u.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	slots, err := parseSlotBatch(doctorID, req.Slots)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to clear slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if err := u.availabilityRepo.InsertSlots(tx, slots); err != nil {
		u.log.Warnf("Failed to insert slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.buildAvailability(ctx, doctorID)
}

// ImportSlotsCSV ingests a ';'-separated CSV with a 'slots' column. Unlike
// ReplaceSlots, malformed rows are skipped and logged instead of failing
// the batch; every valid row is written as it is read.
func (u *availabilityUsecase) ImportSlotsCSV(ctx context.Context, doctorID uuid.UUID, file io.Reader) (*dto.SlotImportResponse, error) {
	if err := u.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	slotsCol := findColumn(header, "slots")
	if slotsCol < 0 {
		return nil, ErrNoSlotsColumn
	}

	result := &dto.SlotImportResponse{}
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
		if slotsCol >= len(record) {
			u.log.Warnf("Skipping CSV row without slots value: %v", record)
			result.Skipped++
			continue
		}

		slotAt, err := parseSlot(record[slotsCol])
		if err != nil {
			u.log.Warnf("Skipping invalid slot datetime %q: %+v", record[slotsCol], err)
			result.Skipped++
			continue
		}

		slot := entity.AvailabilitySlot{DoctorID: doctorID, SlotAt: slotAt}
		if err := u.availabilityRepo.InsertSlots(u.db.WithContext(ctx), []entity.AvailabilitySlot{slot}); err != nil {
			u.log.Warnf("Failed to save slot %q: %+v", record[slotsCol], err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	u.log.Infof("Slot CSV import for doctor %s: %d imported, %d skipped", doctorID, result.Imported, result.Skipped)
	return result, nil
}

func (u *availabilityUsecase) ListSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	if err := u.ensureDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}
	return u.buildAvailability(ctx, doctorID)
}

func (u *availabilityUsecase) ensureDoctorExists(ctx context.Context, doctorID uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *availabilityUsecase) buildAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	slots, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	datetimes := make([]time.Time, len(slots))
	for i, slot := range slots {
		datetimes[i] = slot.SlotAt
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Slots:    datetimes,
		Total:    len(datetimes),
	}, nil
}

// parseSlotBatch validates every element; one bad element rejects the batch.
func parseSlotBatch(doctorID uuid.UUID, raw []string) ([]entity.AvailabilitySlot, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySlots
	}

	slots := make([]entity.AvailabilitySlot, len(raw))
	for i, value := range raw {
		slotAt, err := parseSlot(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
		}
		slots[i] = entity.AvailabilitySlot{DoctorID: doctorID, SlotAt: slotAt}
	}
	return slots, nil
}

func parseSlot(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrInvalidSlot
	}
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}
