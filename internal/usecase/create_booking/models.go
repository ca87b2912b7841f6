package create_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	FacilityID    int64                // ID объекта
	CustomerName  string               // Имя заказчика
	CustomerPhone string               // Телефон заказчика
	CustomerEmail *string              // Email заказчика (аккаунт не обязателен)
	Date          time.Time            // Дата бронирования (без времени)
	StartTime     types.TimeString     // Время начала (например, "10:00")
	EndTime       types.TimeString     // Время конца (например, "12:00")
	SubmittedFee  float64              // Стоимость, заявленная клиентом; сверяется с серверной
	PaymentMethod domain.PaymentMethod // Способ оплаты
	RequesterEmail string              // Email аутентифицированного пользователя (пустой для гостя)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	FacilityID    int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Role          string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	FeePaid       float64
	IsPaid        bool
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
}
