package generate_class_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_class_slots: invalid input data")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("generate_class_slots: facility not found")

	// ErrFacilityInactive возвращается, когда объект деактивирован
	ErrFacilityInactive = errors.New("generate_class_slots: facility is not active")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_class_slots: internal error")
)
