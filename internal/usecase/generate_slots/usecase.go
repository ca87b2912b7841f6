package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// batchDays количество дней, вставляемых одним запросом
const batchDays = 14

// UseCase use case для генерации почасовых слотов объекта
type UseCase struct {
	slotRepo     SlotRepository
	facilityRepo FacilityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, facilityRepo FacilityRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		facilityRepo: facilityRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case генерации слотов
// Если слоты уже существуют, генерация продолжается со дня после последней
// существующей даты: повторные вызовы удлиняют горизонт, а не перекрывают его.
// Существующие слоты не перезаписываются (ON CONFLICT DO NOTHING в репозитории)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: facility=%d, months=%d, capacity=%d",
		req.FacilityID, req.Months, req.Capacity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем объект
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GenerateSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("GenerateSlots: facility id=%d is not active", req.FacilityID)
		return nil, ErrFacilityInactive
	}

	// 3. Определяем начало диапазона: сегодня или день после последнего слота
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	startDate := today
	latest, err := uc.slotRepo.LatestSlotDate(ctx, req.FacilityID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get latest slot date: %v", err)
		return nil, fmt.Errorf("%w: failed to get latest slot date: %v", ErrInternal, err)
	}
	if latest != nil {
		next := latest.AddDate(0, 0, 1)
		if next.After(startDate) {
			startDate = time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
		}
		uc.logger.Info("GenerateSlots: continuing from %s", startDate.Format(domain.DateFormat))
	}

	endDate := startDate.AddDate(0, req.Months, 0)

	// 4. Генерируем слоты пакетами по batchDays дней
	var created int64
	batch := make([]*domain.Slot, 0, batchDays*(domain.ClosingHour-domain.OpeningHour+1))
	daysInBatch := 0

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		daySlots, err := hourlySlotsForDay(req.FacilityID, day, req.Capacity)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
		}
		batch = append(batch, daySlots...)
		daysInBatch++

		if daysInBatch == batchDays {
			count, err := uc.slotRepo.BulkCreate(ctx, batch)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to create slots: %v", err)
				return nil, fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
			}
			created += count
			batch = batch[:0]
			daysInBatch = 0
		}
	}

	if len(batch) > 0 {
		count, err := uc.slotRepo.BulkCreate(ctx, batch)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to create slots: %v", err)
			return nil, fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}
		created += count
	}

	uc.logger.Info("GenerateSlots: facility=%d, created %d slots from %s to %s",
		req.FacilityID, created, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	return &Response{
		CreatedCount: created,
		FromDate:     startDate,
		ToDate:       endDate,
	}, nil
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

	return nil
}

// hourlySlotsForDay строит почасовые слоты рабочего окна одного дня
func hourlySlotsForDay(facilityID int64, day time.Time, capacity int) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0, domain.ClosingHour-domain.OpeningHour+1)

	for hour := domain.OpeningHour; hour <= domain.ClosingHour; hour++ {
		start, err := types.NewTimeStringFromString(fmt.Sprintf("%02d:00", hour))
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(fmt.Sprintf("%02d:00", hour+1))
		if err != nil {
			return nil, err
		}

		slots = append(slots, &domain.Slot{
			FacilityID:        facilityID,
			SlotDate:          day,
			StartTime:         start,
			EndTime:           end,
			InitialCapacity:   capacity,
			RemainingCapacity: capacity,
		})
	}

	return slots, nil
}
