package get_day_schedule

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// Request модель запроса сводки доступности на день
type Request struct {
	Date       time.Time // Дата сводки
	CategoryID *int64    // Опциональный фильтр по категории объектов
}

// Response сводка доступности: объекты с их слотами и активными
// бронированиями на дату
type Response struct {
	Date       time.Time
	Facilities []*FacilitySchedule
}

// FacilitySchedule расписание одного объекта на день
type FacilitySchedule struct {
	Facility *domain.Facility
	Slots    []*domain.Slot
	Bookings []*domain.Booking
}
