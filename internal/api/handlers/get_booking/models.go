package get_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

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
	CancelledAt   *string `json:"cancelledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	CreatedBy     string  `json:"createdBy"`
}

// FromDomain конвертирует бронирование в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		FacilityID:    b.FacilityID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Role:          string(b.RequesterRole),
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Fee:           b.FeePaid,
		IsPaid:        b.IsPaid,
		PaymentMethod: string(b.PaymentMethod),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		CreatedBy:     b.CreatedBy,
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}
