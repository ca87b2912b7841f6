package fees

import (
	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// QuoteRequest запрос на расчёт стоимости бронирования
type QuoteRequest struct {
	FacilityID     int64
	StartTime      types.TimeString
	EndTime        types.TimeString
	CustomerEmail  string // Email заказчика; пустой или незарегистрированный - гостевой тариф
	RequesterEmail string // Email аутентифицированного пользователя, от имени которого идёт запрос
}

// QuoteResponse результат расчёта стоимости
type QuoteResponse struct {
	Fee             float64
	Role            domain.Role
	DurationMinutes int
}
