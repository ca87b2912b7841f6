package userdirectory

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь с таким email не зарегистрирован
	// Вызывающий код трактует это как гостевое бронирование, а не как сбой
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userdirectory client: invalid response")
)
