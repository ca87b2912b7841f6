package domain

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// BookingStatus represents the status of a facility booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentMethod represents how a booking fee was (or will be) paid
type PaymentMethod string

const (
	PayNone    PaymentMethod = "None"
	PayCash    PaymentMethod = "Cash"
	PayCard    PaymentMethod = "Card"
	PayEWallet PaymentMethod = "E-Wallet"
)

// PaymentMethods закрытый список допустимых способов оплаты
var PaymentMethods = []PaymentMethod{PayNone, PayCash, PayCard, PayEWallet}

// IsValidPaymentMethod проверяет, что способ оплаты входит в допустимый список
func IsValidPaymentMethod(m PaymentMethod) bool {
	for _, valid := range PaymentMethods {
		if m == valid {
			return true
		}
	}
	return false
}

// Booking represents a confirmed facility booking
//
// Бронирование намеренно не ссылается на строки слотов по FK:
// слоты - это отдельная таблица учёта ёмкости, сопоставление идёт
// по ключу (facility_id, booking_date, start_time) в момент записи.
type Booking struct {
	ID         int64
	FacilityID int64

	// Данные заказчика (аккаунт не обязателен)
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	RequesterRole Role

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	FeePaid       float64
	IsPaid        bool
	PaymentMethod PaymentMethod

	Status      BookingStatus
	CancelledAt *time.Time

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// DurationMinutes возвращает длительность бронирования в минутах
func (b *Booking) DurationMinutes() (int, error) {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// StartsBefore возвращает true, если бронирование начинается раньше now
// Дата и время начала сравниваются вместе
func (b *Booking) StartsBefore(now time.Time) bool {
	start := time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		b.StartTime.Hour(), b.StartTime.Minute(), 0, 0, now.Location(),
	)
	return start.Before(now)
}

// FacilityBookingsFilter фильтр для выборки бронирований объекта
type FacilityBookingsFilter struct {
	FacilityID       int64      // Обязательный параметр
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	IncludeCancelled bool       // Включать ли отменённые бронирования
}
