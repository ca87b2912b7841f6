package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return booking, nil
}

// ListByFacility получает бронирования объекта с фильтрацией по периоду
// Отменённые бронирования включаются только по явному запросу
func (s *Service) ListByFacility(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByFacility: failed to get bookings for facility id=%d: %v", filter.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// ListByEmail получает бронирования заказчика по email
func (s *Service) ListByEmail(ctx context.Context, email string, includeCancelled bool) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetByEmail(ctx, email, includeCancelled)
	if err != nil {
		s.logger.Error("ListByEmail: failed to get bookings for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// Cancel отменяет бронирование и возвращает ёмкость затронутым слотам
// Выполняется в сериализуемой транзакции: смена статуса и возврат ёмкости
// либо применяются вместе, либо не применяются вовсе.
// Отмена уже начавшегося или уже отменённого бронирования запрещена
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	s.logger.Info("CancelBooking: id=%d", id)

	now := s.timeProvider.Now()

	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("CancelBooking: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("CancelBooking: failed to get booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Повторная отмена запрещена: ёмкость уже возвращена один раз
		if booking.IsCancelled() {
			s.logger.Warn("CancelBooking: booking id=%d is already cancelled", id)
			return ErrAlreadyCancelled
		}

		// 3. Начавшееся бронирование отменять поздно
		if booking.StartsBefore(now) {
			s.logger.Warn("CancelBooking: booking id=%d has already started", id)
			return ErrPastBooking
		}

		// 4. Переводим бронирование в cancelled (soft-delete)
		if err := s.bookingRepo.Cancel(txCtx, id); err != nil {
			s.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 5. Возвращаем ёмкость слотам окна бронирования
		released, err := s.slotRepo.ReleaseRange(txCtx, booking.FacilityID, booking.BookingDate, booking.StartTime, booking.EndTime)
		if err != nil {
			s.logger.Error("CancelBooking: failed to release slots for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to release slots: %v", ErrInternal, err)
		}

		s.logger.Info("CancelBooking: id=%d cancelled, released %d slots", id, released)

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCancelled(ctx, cancelled)

	return cancelled, nil
}

// publishCancelled публикует событие отмены
// Ошибка публикации не откатывает отмену, только логируется
func (s *Service) publishCancelled(ctx context.Context, b *domain.Booking) {
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

	if err := s.publisher.Publish(ctx, events.KeyBookingCancelled, event); err != nil {
		s.logger.Error("CancelBooking: failed to publish event for id=%d: %v", b.ID, err)
	}
}
