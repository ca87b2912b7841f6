package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
	"github.com/m04kA/CMS-FacilityService/pkg/ptr"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByEmail(_ context.Context, _ string, _ bool) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeSlotRepo struct {
	releasedFacility int64
	releasedDate     time.Time
	releasedStart    types.TimeString
	releasedEnd      types.TimeString
	releaseCalls     int
}

func (f *fakeSlotRepo) ReleaseRange(_ context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error) {
	f.releaseCalls++
	f.releasedFacility = facilityID
	f.releasedDate = date
	f.releasedStart = start
	f.releasedEnd = end
	return 2, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	keys   []string
	events []interface{}
}

func (f *fakePublisher) Publish(_ context.Context, key string, event interface{}) error {
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func activeBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:            10,
		FacilityID:    1,
		CustomerName:  "Alice",
		CustomerEmail: ptr.Ptr("alice@club.com"),
		BookingDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTime(t, "10:00"),
		EndTime:       mustTime(t, "12:00"),
		FeePaid:       40,
		Status:        domain.StatusConfirmed,
	}
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking(t)}
	slots := &fakeSlotRepo{}
	publisher := &fakePublisher{}

	svc := NewService(repo, slots, fakeTxManager{}, publisher, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	cancelled, err := svc.Cancel(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	assert.Equal(t, []int64{10}, repo.cancelled)

	assert.Equal(t, 1, slots.releaseCalls)
	assert.Equal(t, int64(1), slots.releasedFacility)
	assert.Equal(t, "10:00", slots.releasedStart.String())
	assert.Equal(t, "12:00", slots.releasedEnd.String())

	require.Equal(t, []string{events.KeyBookingCancelled}, publisher.keys)
	event, ok := publisher.events[0].(events.BookingEvent)
	require.True(t, ok)
	assert.Equal(t, int64(10), event.BookingID)
	assert.Equal(t, "alice@club.com", event.Email)
}

func TestService_Cancel_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}

	svc := NewService(repo, &fakeSlotRepo{}, fakeTxManager{}, &fakePublisher{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	booking := activeBooking(t)
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	slots := &fakeSlotRepo{}

	svc := NewService(repo, slots, fakeTxManager{}, &fakePublisher{}, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 10)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// Ёмкость не возвращается повторно
	assert.Zero(t, slots.releaseCalls)
	assert.Empty(t, repo.cancelled)
}

func TestService_Cancel_PastBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking(t)}
	slots := &fakeSlotRepo{}

	svc := NewService(repo, slots, fakeTxManager{}, &fakePublisher{}, nopLogger{})
	// Бронирование началось час назад
	svc.timeProvider = fixedTime{now: time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)}

	_, err := svc.Cancel(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPastBooking)
	assert.Zero(t, slots.releaseCalls)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}

	svc := NewService(repo, &fakeSlotRepo{}, fakeTxManager{}, &fakePublisher{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
