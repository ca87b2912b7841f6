package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	overlapping   []*domain.Booking
	lastExcludeID *int64
	updatedID     int64
	updatedDate   time.Time
	updatedStart  types.TimeString
	updatedEnd    types.TimeString
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, excludeID *int64) ([]*domain.Booking, error) {
	f.lastExcludeID = excludeID
	return f.overlapping, nil
}

func (f *fakeBookingRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, start, end types.TimeString) error {
	f.updatedID = id
	f.updatedDate = date
	f.updatedStart = start
	f.updatedEnd = end
	return nil
}

type fakeSlotRepo struct {
	slots            []*domain.Slot
	decrementReturns int64
	decrementCalls   int
	zeroCalls        int
	releaseCalls     int
}

func (f *fakeSlotRepo) GetRange(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) ([]*domain.Slot, error) {
	return f.slots, nil
}

func (f *fakeSlotRepo) DecrementRange(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) (int64, error) {
	f.decrementCalls++
	return f.decrementReturns, nil
}

func (f *fakeSlotRepo) ZeroRange(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) (int64, error) {
	f.zeroCalls++
	return int64(len(f.slots)), nil
}

func (f *fakeSlotRepo) ReleaseRange(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) (int64, error) {
	f.releaseCalls++
	return int64(len(f.slots)), nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) Publish(_ context.Context, key string, _ interface{}) error {
	f.keys = append(f.keys, key)
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

func existingBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:            10,
		FacilityID:    1,
		RequesterRole: domain.RoleMember,
		BookingDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTime(t, "10:00"),
		EndTime:       mustTime(t, "12:00"),
		Status:        domain.StatusConfirmed,
	}
}

func newSlots(t *testing.T) []*domain.Slot {
	t.Helper()
	return []*domain.Slot{
		{ID: 3, FacilityID: 1, StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "15:00"), InitialCapacity: 5, RemainingCapacity: 5},
		{ID: 4, FacilityID: 1, StartTime: mustTime(t, "15:00"), EndTime: mustTime(t, "16:00"), InitialCapacity: 5, RemainingCapacity: 5},
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		BookingID: 10,
		Date:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "14:00"),
		EndTime:   mustTime(t, "16:00"),
	}
}

func newFixture(t *testing.T) (*UseCase, *fakeBookingRepo, *fakeSlotRepo, *fakePublisher) {
	t.Helper()

	bookings := &fakeBookingRepo{booking: existingBooking(t)}
	slots := &fakeSlotRepo{slots: newSlots(t), decrementReturns: 2}
	publisher := &fakePublisher{}

	uc := NewUseCase(bookings, slots, fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	return uc, bookings, slots, publisher
}

func TestUseCase_Execute(t *testing.T) {
	uc, bookings, slots, publisher := newFixture(t)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "14:00", resp.StartTime.String())
	assert.Equal(t, "16:00", resp.EndTime.String())

	// Проверка пересечений исключала собственную строку
	require.NotNil(t, bookings.lastExcludeID)
	assert.Equal(t, int64(10), *bookings.lastExcludeID)

	// Старое окно возвращено, новое списано
	assert.Equal(t, 1, slots.releaseCalls)
	assert.Equal(t, 1, slots.decrementCalls)
	assert.Zero(t, slots.zeroCalls)

	assert.Equal(t, int64(10), bookings.updatedID)
	assert.Equal(t, []string{events.KeyBookingUpdated}, publisher.keys)
}

func TestUseCase_Execute_DurationChanged(t *testing.T) {
	uc, bookings, slots, _ := newFixture(t)

	req := validRequest(t)
	req.EndTime = mustTime(t, "15:00") // исходное бронирование на 2 часа

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationChanged)
	assert.Zero(t, slots.releaseCalls)
	assert.Zero(t, bookings.updatedID)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc, bookings, _, _ := newFixture(t)
	bookings.getErr = bookingRepo.ErrBookingNotFound

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_Cancelled(t *testing.T) {
	uc, bookings, _, _ := newFixture(t)
	bookings.booking.Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	uc, bookings, slots, _ := newFixture(t)
	bookings.overlapping = []*domain.Booking{{ID: 11, Status: domain.StatusConfirmed}}

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Zero(t, slots.decrementCalls)
}

func TestUseCase_Execute_SlotUnavailable(t *testing.T) {
	uc, _, slots, _ := newFixture(t)
	slots.slots[0].RemainingCapacity = 0

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUseCase_Execute_CoachZeroesNewWindow(t *testing.T) {
	uc, bookings, slots, _ := newFixture(t)
	bookings.booking.RequesterRole = domain.RoleCoach

	_, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, 1, slots.zeroCalls)
	assert.Zero(t, slots.decrementCalls)
}

func TestUseCase_Execute_ScheduleValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(t *testing.T, req *Request)
		expectedErr error
	}{
		{
			name: "past date",
			mutate: func(t *testing.T, req *Request) {
				req.Date = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
			},
			expectedErr: ErrInvalidDate,
		},
		{
			name: "misaligned start",
			mutate: func(t *testing.T, req *Request) {
				req.StartTime = mustTime(t, "14:15")
			},
			expectedErr: ErrNotHourAligned,
		},
		{
			name: "inverted range",
			mutate: func(t *testing.T, req *Request) {
				req.StartTime = mustTime(t, "16:00")
				req.EndTime = mustTime(t, "14:00")
			},
			expectedErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _ := newFixture(t)

			req := validRequest(t)
			tt.mutate(t, req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
