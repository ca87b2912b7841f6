package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString, excludeID *int64) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) ([]*domain.Slot, error)
	DecrementRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error)
	ZeroRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// FeeService интерфейс сервиса расчёта стоимости
type FeeService interface {
	Quote(ctx context.Context, req *fees.QuoteRequest) (*fees.QuoteResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
