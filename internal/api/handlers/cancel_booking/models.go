package cancel_booking

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelledAt,omitempty"`
}

// FromDomain конвертирует отменённое бронирование в HTTP response
func FromDomain(b *domain.Booking) *CancelBookingResponse {
	resp := &CancelBookingResponse{
		ID:     b.ID,
		Status: string(b.Status),
	}
	if b.CancelledAt != nil {
		resp.CancelledAt = b.CancelledAt.Format(time.RFC3339)
	}
	return resp
}
