package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	List(ctx context.Context, categoryID *int64) ([]*domain.Facility, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
