package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/ptr"
)

type fakeFacilityRepo struct {
	facilities     []*domain.Facility
	lastCategoryID *int64
}

func (f *fakeFacilityRepo) List(_ context.Context, categoryID *int64) ([]*domain.Facility, error) {
	f.lastCategoryID = categoryID
	return f.facilities, nil
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Slot, error) {
	return f.slots, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListActiveByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	facilities := &fakeFacilityRepo{facilities: []*domain.Facility{
		{ID: 1, Name: "Tennis Court 1"},
		{ID: 2, Name: "Swimming Pool"},
	}}
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		{ID: 10, FacilityID: 1},
		{ID: 11, FacilityID: 1},
		{ID: 12, FacilityID: 2},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 100, FacilityID: 2, Status: domain.StatusConfirmed},
	}}

	uc := NewUseCase(facilities, slots, bookings, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CategoryID: ptr.Ptr(int64(3)),
	})
	require.NoError(t, err)

	require.NotNil(t, facilities.lastCategoryID)
	assert.Equal(t, int64(3), *facilities.lastCategoryID)

	require.Len(t, resp.Facilities, 2)

	court := resp.Facilities[0]
	assert.Equal(t, int64(1), court.Facility.ID)
	assert.Len(t, court.Slots, 2)
	assert.Empty(t, court.Bookings)

	pool := resp.Facilities[1]
	assert.Equal(t, int64(2), pool.Facility.ID)
	assert.Len(t, pool.Slots, 1)
	assert.Len(t, pool.Bookings, 1)
}

func TestUseCase_Execute_RequiresDate(t *testing.T) {
	uc := NewUseCase(&fakeFacilityRepo{}, &fakeSlotRepo{}, &fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
