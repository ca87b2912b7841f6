package fees

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrRoleNotAllowed возвращается для ролей, которым бронирование запрещено
	// (staff и superadmin всегда; admin вне self-service пути)
	ErrRoleNotAllowed = errors.New("booking is not allowed for this role")

	// ErrUnknownRole возвращается для роли вне закрытого перечисления
	ErrUnknownRole = errors.New("unknown role")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("fees: internal error")
)
