package create_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	createBooking "github.com/m04kA/CMS-FacilityService/internal/usecase/create_booking"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID    int64   `json:"facilityId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	EndTime       string  `json:"endTime"`     // "12:00"
	Fee           float64 `json:"fee"`         // Сверяется с серверным расчётом
	PaymentMethod string  `json:"paymentMethod"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	FacilityID    int64   `json:"facilityId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Role          string  `json:"role"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Fee           float64 `json:"fee"`
	IsPaid        bool    `json:"isPaid"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requesterEmail string) (*createBooking.Request, error) {
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

	return &createBooking.Request{
		FacilityID:     r.FacilityID,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerEmail:  r.CustomerEmail,
		Date:           bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		SubmittedFee:   r.Fee,
		PaymentMethod:  domain.PaymentMethod(r.PaymentMethod),
		RequesterEmail: requesterEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		FacilityID:    resp.FacilityID,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,
		Role:          resp.Role,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Fee:           resp.FeePaid,
		IsPaid:        resp.IsPaid,
		PaymentMethod: resp.PaymentMethod,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
