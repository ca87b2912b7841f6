package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
	"github.com/m04kA/CMS-FacilityService/pkg/ptr"
)

// UseCase use case для переноса бронирования на новые дату и время
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
// Длительность бронирования сохраняется; проверка пересечений исключает
// собственную строку. Возврат ёмкости старого окна и списание нового
// идут в одной сериализуемой транзакции, поэтому перенос внутри того же
// окна не упирается в собственное списание
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d, date=%s, time=%s-%s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация новых даты и времени
	now := uc.timeProvider.Now()
	if err := validateSchedule(req.Date, req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("UpdateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	newHours, err := durationHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsCancelled() {
			uc.logger.Warn("UpdateBooking: booking id=%d is cancelled", req.BookingID)
			return ErrBookingCancelled
		}

		// 3.2. Правка не меняет длительность
		oldMinutes, err := booking.DurationMinutes()
		if err != nil {
			return fmt.Errorf("%w: failed to compute current duration: %v", ErrInternal, err)
		}
		if oldMinutes != newHours*domain.MinutesPerSlot {
			uc.logger.Warn("UpdateBooking: duration change rejected: %d -> %d minutes",
				oldMinutes, newHours*domain.MinutesPerSlot)
			return ErrDurationChanged
		}

		// 3.3. Пересечения с чужими бронированиями (собственная строка исключается)
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, booking.FacilityID, req.Date, req.StartTime, req.EndTime, ptr.Ptr(booking.ID))
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("UpdateBooking: new window overlaps %d bookings", len(overlapping))
			return ErrBookingConflict
		}

		// 3.4. Возвращаем ёмкость старого окна
		if _, err := uc.slotRepo.ReleaseRange(txCtx, booking.FacilityID, booking.BookingDate, booking.StartTime, booking.EndTime); err != nil {
			uc.logger.Error("UpdateBooking: failed to release old slots: %v", err)
			return fmt.Errorf("%w: failed to release old slots: %v", ErrInternal, err)
		}

		// 3.5. Слоты нового окна существуют и имеют ёмкость (FOR UPDATE)
		slots, err := uc.slotRepo.GetRange(txCtx, booking.FacilityID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		if len(slots) != newHours {
			uc.logger.Warn("UpdateBooking: expected %d slots, found %d", newHours, len(slots))
			return ErrSlotUnavailable
		}
		for _, s := range slots {
			if !s.HasCapacity() {
				uc.logger.Warn("UpdateBooking: slot id=%d is exhausted", s.ID)
				return ErrSlotUnavailable
			}
		}

		// 3.6. Списываем ёмкость нового окна
		if booking.RequesterRole == domain.RoleCoach {
			if _, err := uc.slotRepo.ZeroRange(txCtx, booking.FacilityID, req.Date, req.StartTime, req.EndTime); err != nil {
				uc.logger.Error("UpdateBooking: failed to zero slots: %v", err)
				return fmt.Errorf("%w: failed to zero slots: %v", ErrInternal, err)
			}
		} else {
			affected, err := uc.slotRepo.DecrementRange(txCtx, booking.FacilityID, req.Date, req.StartTime, req.EndTime)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to decrement slots: %v", err)
				return fmt.Errorf("%w: failed to decrement slots: %v", ErrInternal, err)
			}
			if affected != int64(newHours) {
				uc.logger.Warn("UpdateBooking: decremented %d of %d slots", affected, newHours)
				return ErrSlotUnavailable
			}
		}

		// 3.7. Переносим бронирование
		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.Date, req.StartTime, req.EndTime); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.BookingDate = req.Date
		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", result.ID)

	uc.publishUpdated(ctx, result)

	return &Response{
		ID:          result.ID,
		FacilityID:  result.FacilityID,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
	}, nil
}

// publishUpdated публикует событие переноса
// Ошибка публикации не откатывает перенос, только логируется
func (uc *UseCase) publishUpdated(ctx context.Context, b *domain.Booking) {
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

	if err := uc.publisher.Publish(ctx, events.KeyBookingUpdated, event); err != nil {
		uc.logger.Error("UpdateBooking: failed to publish event for id=%d: %v", b.ID, err)
	}
}
