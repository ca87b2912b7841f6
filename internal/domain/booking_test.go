package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_StateHelpers(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.IsActive())
	assert.False(t, confirmed.IsCancelled())

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
}

func TestBooking_DurationMinutes(t *testing.T) {
	b := &Booking{StartTime: "10:00", EndTime: "12:00"}

	got, err := b.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 120, got)
}

func TestBooking_StartsBefore(t *testing.T) {
	now := time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC)

	past := &Booking{
		BookingDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
	}
	assert.True(t, past.StartsBefore(now))

	future := &Booking{
		BookingDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   "12:00",
	}
	assert.False(t, future.StartsBefore(now))

	tomorrow := &Booking{
		BookingDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
	}
	assert.False(t, tomorrow.StartsBefore(now))
}
