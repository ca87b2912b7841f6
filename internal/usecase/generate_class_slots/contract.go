package generate_class_slots

import (
	"context"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindOverlapping(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (*domain.Slot, error)
	OverlayClass(ctx context.Context, id int64, capacity int) error
	BulkCreate(ctx context.Context, slots []*domain.Slot) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasActiveOverlapping(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (bool, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
