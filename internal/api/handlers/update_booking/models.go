package update_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	updateBooking "github.com/m04kA/CMS-FacilityService/internal/usecase/update_booking"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// UpdateBookingRequest HTTP request model
// Длительность нового окна должна совпадать с исходной
type UpdateBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "12:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	FacilityID  int64  `json:"facilityId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		Date:      bookingDate,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		FacilityID:  resp.FacilityID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
	}
}
