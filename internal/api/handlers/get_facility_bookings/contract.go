package get_facility_bookings

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

type BookingService interface {
	ListByFacility(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
