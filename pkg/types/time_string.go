package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM
const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrScanTimeString возвращается при ошибке сканирования значения из БД
	ErrScanTimeString = errors.New("failed to scan time string")
)

// TimeString время в формате "HH:MM" (например, "10:00")
// Используется для времени начала и конца слотов и бронирований.
// Хранится в БД в колонке типа TIME.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата времени
func (ts TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return nil
}

// toTime парсит TimeString в time.Time (дата не имеет значения)
func (ts TimeString) toTime() (time.Time, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return t, nil
}

// Hour возвращает час (0-23); для некорректного значения возвращает 0
func (ts TimeString) Hour() int {
	t, err := ts.toTime()
	if err != nil {
		return 0
	}
	return t.Hour()
}

// Minute возвращает минуты (0-59); для некорректного значения возвращает 0
func (ts TimeString) Minute() int {
	t, err := ts.toTime()
	if err != nil {
		return 0
	}
	return t.Minute()
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.toTime()
	if err != nil {
		return "", err
	}
	return NewTimeString(t.Add(time.Duration(minutes) * time.Minute)), nil
}

// MinutesUntil возвращает количество минут от ts до other
// Для other раньше ts результат отрицательный
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := ts.toTime()
	if err != nil {
		return 0, err
	}
	to, err := other.toTime()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from) / time.Minute), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres возвращает колонку TIME как строку "HH:MM:SS" или time.Time
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrScanTimeString, src)
	}
}

// scanString парсит строковое значение времени из БД
func (ts *TimeString) scanString(s string) error {
	for _, layout := range []string{"15:04:05", timeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = NewTimeString(t)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrScanTimeString, s)
}
