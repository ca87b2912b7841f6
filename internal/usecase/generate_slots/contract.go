package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LatestSlotDate(ctx context.Context, facilityID int64) (*time.Time, error)
	BulkCreate(ctx context.Context, slots []*domain.Slot) (int64, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
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
