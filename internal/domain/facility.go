package domain

import "time"

// Facility represents a bookable club facility (court, hall, pool)
// Деактивация объекта не удаляет существующие бронирования и слоты
type Facility struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description *string
	HourlyPrice float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FacilityCategory группа объектов (корты, залы, бассейны)
type FacilityCategory struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
