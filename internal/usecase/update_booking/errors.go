package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrBookingCancelled возвращается при попытке изменить отменённое бронирование
	ErrBookingCancelled = errors.New("update_booking: booking is cancelled")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("update_booking: booking date is in the past")

	// ErrNotHourAligned возвращается, когда время начала или конца не кратно часу
	ErrNotHourAligned = errors.New("update_booking: booking times must be hour-aligned")

	// ErrInvalidTimeRange возвращается, когда время конца не позже времени начала
	ErrInvalidTimeRange = errors.New("update_booking: end time must be after start time")

	// ErrTimeInPast возвращается, когда новое время начала уже прошло
	ErrTimeInPast = errors.New("update_booking: booking start time has already passed")

	// ErrDurationChanged возвращается, когда правка меняет длительность бронирования
	ErrDurationChanged = errors.New("update_booking: booking duration must be preserved")

	// ErrBookingConflict возвращается, когда новое окно пересекается с чужим бронированием
	ErrBookingConflict = errors.New("update_booking: overlapping booking exists")

	// ErrSlotUnavailable возвращается, когда слоты нового окна отсутствуют или исчерпаны
	ErrSlotUnavailable = errors.New("update_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
