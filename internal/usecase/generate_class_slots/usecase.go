package generate_class_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/slot"
)

// UseCase use case для генерации слотов занятий
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case генерации слотов занятий
// Генерация идёт только по выбранному дню недели. Конфликт с существующим
// слотом разрешается перезаписью его ёмкости, но день с существующим
// бронированием пропускается и попадает в отчёт: занятый слот никогда
// не перезаписывается молча
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateClassSlots: facility=%d, months=%d, capacity=%d, weekday=%s, time=%s-%s",
		req.FacilityID, req.Months, req.Capacity, req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateClassSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем объект
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GenerateClassSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GenerateClassSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("GenerateClassSlots: facility id=%d is not active", req.FacilityID)
		return nil, ErrFacilityInactive
	}

	// 3. Диапазон генерации: [сегодня, сегодня + months]
	now := uc.timeProvider.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, req.Months, 0)

	resp := &Response{SkippedDays: make([]time.Time, 0)}

	// 4. Обходим дни выбранного дня недели в одной сериализуемой транзакции:
	// решение "перезаписать или пропустить" не должно гоняться с бронированиями
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			if day.Weekday() != req.DayOfWeek {
				continue
			}

			if err := uc.generateForDay(txCtx, req, day, resp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateClassSlots: facility=%d, created=%d, overwritten=%d, skipped=%d",
		req.FacilityID, resp.CreatedCount, resp.OverwrittenCount, len(resp.SkippedDays))

	return resp, nil
}

// generateForDay обрабатывает один день занятия
func (uc *UseCase) generateForDay(ctx context.Context, req *Request, day time.Time, resp *Response) error {
	existing, err := uc.slotRepo.FindOverlapping(ctx, req.FacilityID, day, req.StartTime, req.EndTime)
	if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Error("GenerateClassSlots: failed to find overlapping slot on %s: %v",
			day.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to find overlapping slot: %v", ErrInternal, err)
	}

	// Пересечений нет: создаём новый слот занятия
	if existing == nil {
		created, err := uc.slotRepo.BulkCreate(ctx, []*domain.Slot{{
			FacilityID:        req.FacilityID,
			SlotDate:          day,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			InitialCapacity:   req.Capacity,
			RemainingCapacity: req.Capacity,
			IsClass:           true,
		}})
		if err != nil {
			uc.logger.Error("GenerateClassSlots: failed to create class slot on %s: %v",
				day.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to create class slot: %v", ErrInternal, err)
		}
		resp.CreatedCount += created
		return nil
	}

	// Пересекающийся слот с бронированием не трогаем, день уходит в отчёт
	booked, err := uc.bookingRepo.HasActiveOverlapping(ctx, req.FacilityID, day, existing.StartTime, existing.EndTime)
	if err != nil {
		uc.logger.Error("GenerateClassSlots: failed to check bookings on %s: %v",
			day.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to check bookings: %v", ErrInternal, err)
	}
	if booked {
		uc.logger.Warn("GenerateClassSlots: skipping %s, overlapping slot id=%d has bookings",
			day.Format(domain.DateFormat), existing.ID)
		resp.SkippedDays = append(resp.SkippedDays, day)
		return nil
	}

	// Свободный слот перезаписывается расписанием занятий
	if err := uc.slotRepo.OverlayClass(ctx, existing.ID, req.Capacity); err != nil {
		uc.logger.Error("GenerateClassSlots: failed to overlay slot id=%d: %v", existing.ID, err)
		return fmt.Errorf("%w: failed to overlay slot: %v", ErrInternal, err)
	}
	resp.OverwrittenCount++

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Months < domain.MinGenerateMonths || req.Months > domain.MaxGenerateMonths {
		return fmt.Errorf("%w: months must be between %d and %d",
			ErrInvalidInput, domain.MinGenerateMonths, domain.MaxGenerateMonths)
	}

	if req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	if req.DayOfWeek < time.Sunday || req.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: unknown day of week %d", ErrInvalidInput, req.DayOfWeek)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	return nil
}
