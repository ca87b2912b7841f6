package get_requester_bookings

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

type BookingService interface {
	ListByEmail(ctx context.Context, email string, includeCancelled bool) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
