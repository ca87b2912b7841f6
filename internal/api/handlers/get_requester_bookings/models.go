package get_requester_bookings

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// BookingItem элемент списка бронирований заказчика
type BookingItem struct {
	ID          int64   `json:"id"`
	FacilityID  int64   `json:"facilityId"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Fee         float64 `json:"fee"`
	IsPaid      bool    `json:"isPaid"`
	Status      string  `json:"status"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// RequesterBookingsResponse HTTP response model
type RequesterBookingsResponse struct {
	Email    string         `json:"email"`
	Bookings []*BookingItem `json:"bookings"`
}

// FromDomain конвертирует список бронирований в HTTP response
func FromDomain(email string, list []*domain.Booking) *RequesterBookingsResponse {
	items := make([]*BookingItem, 0, len(list))
	for _, b := range list {
		item := &BookingItem{
			ID:          b.ID,
			FacilityID:  b.FacilityID,
			BookingDate: b.BookingDate.Format(domain.DateFormat),
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			Fee:         b.FeePaid,
			IsPaid:      b.IsPaid,
			Status:      string(b.Status),
		}
		if b.CancelledAt != nil {
			cancelledAt := b.CancelledAt.Format(time.RFC3339)
			item.CancelledAt = &cancelledAt
		}
		items = append(items, item)
	}

	return &RequesterBookingsResponse{
		Email:    email,
		Bookings: items,
	}
}
