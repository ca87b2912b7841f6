package update_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// Request модель запроса на перенос бронирования
// Длительность окна должна совпадать с исходной
type Request struct {
	BookingID int64            // ID бронирования
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
	EndTime   types.TimeString // Новое время конца
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID          int64
	FacilityID  int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
}
