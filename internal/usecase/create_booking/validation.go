package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// validateRequest валидирует форму запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !domain.IsValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateSchedule проверяет дату и времена бронирования
// Проверки идут по порядку, возвращается первая нарушенная
func validateSchedule(date time.Time, start, end types.TimeString, now time.Time) error {
	// 1. Дата не в прошлом
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// 2. Времена выровнены по часу
	if start.Minute() != 0 || end.Minute() != 0 {
		return ErrNotHourAligned
	}

	// 3. Конец строго позже начала
	if !end.IsAfter(start) {
		return ErrInvalidTimeRange
	}

	// 4. Начало сегодняшнего бронирования ещё не прошло
	if isSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		if !start.IsAfter(currentTime) {
			return ErrTimeInPast
		}
	}

	return nil
}

// durationHours возвращает длительность окна в целых часах
func durationHours(start, end types.TimeString) (int, error) {
	minutes, err := start.MinutesUntil(end)
	if err != nil {
		return 0, err
	}
	return minutes / domain.MinutesPerSlot, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
