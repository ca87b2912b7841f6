package get_facility_bookings

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// BookingItem элемент списка бронирований
type BookingItem struct {
	ID            int64   `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Role          string  `json:"role"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Fee           float64 `json:"fee"`
	IsPaid        bool    `json:"isPaid"`
	Status        string  `json:"status"`
	CancelledAt   *string `json:"cancelledAt,omitempty"`
}

// FacilityBookingsResponse HTTP response model
type FacilityBookingsResponse struct {
	FacilityID int64          `json:"facilityId"`
	Bookings   []*BookingItem `json:"bookings"`
}

// FromDomain конвертирует список бронирований в HTTP response
func FromDomain(facilityID int64, list []*domain.Booking) *FacilityBookingsResponse {
	items := make([]*BookingItem, 0, len(list))
	for _, b := range list {
		item := &BookingItem{
			ID:            b.ID,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			Role:          string(b.RequesterRole),
			BookingDate:   b.BookingDate.Format(domain.DateFormat),
			StartTime:     b.StartTime.String(),
			EndTime:       b.EndTime.String(),
			Fee:           b.FeePaid,
			IsPaid:        b.IsPaid,
			Status:        string(b.Status),
		}
		if b.CancelledAt != nil {
			cancelledAt := b.CancelledAt.Format(time.RFC3339)
			item.CancelledAt = &cancelledAt
		}
		items = append(items, item)
	}

	return &FacilityBookingsResponse{
		FacilityID: facilityID,
		Bookings:   items,
	}
}
