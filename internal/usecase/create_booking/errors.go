package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: booking date is in the past")

	// ErrNotHourAligned возвращается, когда время начала или конца не кратно часу
	ErrNotHourAligned = errors.New("create_booking: booking times must be hour-aligned")

	// ErrInvalidTimeRange возвращается, когда время конца не позже времени начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrTimeInPast возвращается, когда время начала сегодняшнего бронирования уже прошло
	ErrTimeInPast = errors.New("create_booking: booking start time has already passed")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrFacilityInactive возвращается, когда объект деактивирован
	ErrFacilityInactive = errors.New("create_booking: facility is not active")

	// ErrBookingConflict возвращается, когда окно пересекается с существующим бронированием
	ErrBookingConflict = errors.New("create_booking: overlapping booking exists")

	// ErrSlotUnavailable возвращается, когда слоты окна отсутствуют или исчерпаны
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrFeeMismatch возвращается при расхождении клиентской и серверной стоимости
	ErrFeeMismatch = errors.New("create_booking: submitted fee does not match computed fee")

	// ErrRoleNotAllowed возвращается для ролей, которым бронирование запрещено
	ErrRoleNotAllowed = errors.New("create_booking: booking is not allowed for this role")

	// ErrUnknownRole возвращается для роли вне закрытого перечисления
	ErrUnknownRole = errors.New("create_booking: unknown role")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
