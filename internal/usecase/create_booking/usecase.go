package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	facilityRepo FacilityRepository
	feeService   FeeService
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	facilityRepo FacilityRepository,
	feeService FeeService,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		facilityRepo: facilityRepo,
		feeService:   feeService,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений, проверка ёмкости, списание и запись бронирования
// идут в одной сериализуемой транзакции: при гонке за последнее место
// ровно один запрос проходит, остальные получают отказ по ёмкости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: facility=%d, date=%s, time=%s-%s, customer=%s",
		req.FacilityID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.CustomerName)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты и времени
	now := uc.timeProvider.Now()
	if err := validateSchedule(req.Date, req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем объект
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("CreateBooking: facility id=%d is not active", req.FacilityID)
		return nil, ErrFacilityInactive
	}

	// 4. Пересчитываем стоимость на сервере
	quote, err := uc.quote(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Сверяем с клиентской суммой: расхождение трактуется как подмена
	if !fees.Match(req.SubmittedFee, quote.Fee) {
		uc.logger.Warn("CreateBooking: fee mismatch: submitted=%.2f, computed=%.2f",
			req.SubmittedFee, quote.Fee)
		return nil, ErrFeeMismatch
	}

	hours, err := durationHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 6. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Пересечение с существующим активным бронированием (FOR UPDATE)
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.FacilityID, req.Date, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: facility=%d has %d overlapping bookings on %s",
				req.FacilityID, len(overlapping), req.Date.Format(domain.DateFormat))
			return ErrBookingConflict
		}

		// 6.2. Слоты окна существуют и имеют ёмкость (FOR UPDATE)
		slots, err := uc.slotRepo.GetRange(txCtx, req.FacilityID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		if len(slots) != hours {
			uc.logger.Warn("CreateBooking: expected %d slots, found %d", hours, len(slots))
			return ErrSlotUnavailable
		}
		for _, s := range slots {
			if !s.HasCapacity() {
				uc.logger.Warn("CreateBooking: slot id=%d is exhausted", s.ID)
				return ErrSlotUnavailable
			}
		}

		// 6.3. Списываем ёмкость: тренер монополизирует слоты целиком
		if quote.Role == domain.RoleCoach {
			if _, err := uc.slotRepo.ZeroRange(txCtx, req.FacilityID, req.Date, req.StartTime, req.EndTime); err != nil {
				uc.logger.Error("CreateBooking: failed to zero slots: %v", err)
				return fmt.Errorf("%w: failed to zero slots: %v", ErrInternal, err)
			}
		} else {
			affected, err := uc.slotRepo.DecrementRange(txCtx, req.FacilityID, req.Date, req.StartTime, req.EndTime)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to decrement slots: %v", err)
				return fmt.Errorf("%w: failed to decrement slots: %v", ErrInternal, err)
			}
			// Условный decrement затронул меньше строк, чем часов в окне:
			// кто-то успел исчерпать слот между проверкой и списанием
			if affected != int64(hours) {
				uc.logger.Warn("CreateBooking: decremented %d of %d slots", affected, hours)
				return ErrSlotUnavailable
			}
		}

		// 6.4. Записываем бронирование
		booking := &domain.Booking{
			FacilityID:    req.FacilityID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			RequesterRole: quote.Role,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			FeePaid:       quote.Fee,
			IsPaid:        quote.Fee > 0,
			PaymentMethod: req.PaymentMethod,
			Status:        domain.StatusConfirmed,
			CreatedBy:     createdBy(req),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, fee=%.2f, role=%s",
		result.ID, result.FeePaid, result.RequesterRole)

	uc.publishCreated(ctx, result)

	return &Response{
		ID:            result.ID,
		FacilityID:    result.FacilityID,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		CustomerEmail: result.CustomerEmail,
		Role:          string(result.RequesterRole),
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		FeePaid:       result.FeePaid,
		IsPaid:        result.IsPaid,
		PaymentMethod: string(result.PaymentMethod),
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// quote пересчитывает стоимость на сервере и переводит ошибки сервиса
// в ошибки usecase
func (uc *UseCase) quote(ctx context.Context, req *Request) (*fees.QuoteResponse, error) {
	quoteReq := &fees.QuoteRequest{
		FacilityID:     req.FacilityID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RequesterEmail: req.RequesterEmail,
	}
	if req.CustomerEmail != nil {
		quoteReq.CustomerEmail = *req.CustomerEmail
	}

	quote, err := uc.feeService.Quote(ctx, quoteReq)
	if err != nil {
		switch {
		case errors.Is(err, fees.ErrRoleNotAllowed):
			uc.logger.Warn("CreateBooking: role is not allowed to book")
			return nil, ErrRoleNotAllowed
		case errors.Is(err, fees.ErrUnknownRole):
			uc.logger.Warn("CreateBooking: unknown requester role")
			return nil, ErrUnknownRole
		case errors.Is(err, fees.ErrFacilityNotFound):
			return nil, ErrFacilityNotFound
		case errors.Is(err, fees.ErrInvalidTimeRange):
			return nil, ErrInvalidTimeRange
		default:
			uc.logger.Error("CreateBooking: failed to compute fee: %v", err)
			return nil, fmt.Errorf("%w: failed to compute fee: %v", ErrInternal, err)
		}
	}

	return quote, nil
}

// publishCreated публикует событие создания
// Ошибка публикации не откатывает бронирование, только логируется
func (uc *UseCase) publishCreated(ctx context.Context, b *domain.Booking) {
	event := events.BookingEvent{
		BookingID:   b.ID,
		FacilityID:  b.FacilityID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Fee:         b.FeePaid,
	}
	if b.CustomerEmail != nil {
		event.Email = *b.CustomerEmail
	}

	if err := uc.publisher.Publish(ctx, events.KeyBookingCreated, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for id=%d: %v", b.ID, err)
	}
}

// createdBy возвращает значение audit-поля created_by
func createdBy(req *Request) string {
	if req.RequesterEmail != "" {
		return req.RequesterEmail
	}
	return "guest"
}
