package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
	"github.com/m04kA/CMS-FacilityService/pkg/ptr"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

type fakeBookingRepo struct {
	overlapping []*domain.Booking
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 42
	b.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ *int64) ([]*domain.Booking, error) {
	return f.overlapping, nil
}

type fakeSlotRepo struct {
	slots            []*domain.Slot
	decrementReturns int64
	decrementCalls   int
	zeroCalls        int
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

type fakeFacilityRepo struct {
	facility *domain.Facility
	err      error
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, f.err
}

type fakeFeeService struct {
	quote *fees.QuoteResponse
	err   error
}

func (f *fakeFeeService) Quote(_ context.Context, _ *fees.QuoteRequest) (*fees.QuoteResponse, error) {
	return f.quote, f.err
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

func twoSlots(t *testing.T) []*domain.Slot {
	t.Helper()
	return []*domain.Slot{
		{ID: 1, FacilityID: 1, StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "11:00"), InitialCapacity: 5, RemainingCapacity: 5},
		{ID: 2, FacilityID: 1, StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "12:00"), InitialCapacity: 5, RemainingCapacity: 3},
	}
}

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	slots     *fakeSlotRepo
	publisher *fakePublisher
}

func newFixture(t *testing.T, feeSvc FeeService) *fixture {
	t.Helper()

	bookings := &fakeBookingRepo{}
	slots := &fakeSlotRepo{slots: twoSlots(t), decrementReturns: 2}
	facility := &fakeFacilityRepo{facility: &domain.Facility{ID: 1, HourlyPrice: 20, IsActive: true}}
	publisher := &fakePublisher{}

	uc := NewUseCase(bookings, slots, facility, feeSvc, fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookings: bookings, slots: slots, publisher: publisher}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		FacilityID:    1,
		CustomerName:  "Alice",
		CustomerPhone: "+70000000000",
		CustomerEmail: ptr.Ptr("alice@club.com"),
		Date:          time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTime(t, "10:00"),
		EndTime:       mustTime(t, "12:00"),
		SubmittedFee:  40,
		PaymentMethod: domain.PayCard,
	}
}

func memberQuote() *fakeFeeService {
	return &fakeFeeService{quote: &fees.QuoteResponse{Fee: 40, Role: domain.RoleMember, DurationMinutes: 120}}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t, memberQuote())

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "member", resp.Role)
	assert.InDelta(t, 40, resp.FeePaid, 0.001)
	assert.True(t, resp.IsPaid)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, domain.RoleMember, f.bookings.created.RequesterRole)
	assert.Equal(t, "guest", f.bookings.created.CreatedBy)

	assert.Equal(t, 1, f.slots.decrementCalls)
	assert.Zero(t, f.slots.zeroCalls)

	assert.Equal(t, []string{events.KeyBookingCreated}, f.publisher.keys)
}

func TestUseCase_Execute_ScheduleValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(t *testing.T, req *Request)
		expectedErr error
	}{
		{
			name: "date in the past",
			mutate: func(t *testing.T, req *Request) {
				req.Date = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
			},
			expectedErr: ErrInvalidDate,
		},
		{
			name: "start time not hour-aligned",
			mutate: func(t *testing.T, req *Request) {
				req.StartTime = mustTime(t, "10:30")
			},
			expectedErr: ErrNotHourAligned,
		},
		{
			name: "end time not hour-aligned",
			mutate: func(t *testing.T, req *Request) {
				req.EndTime = mustTime(t, "11:30")
			},
			expectedErr: ErrNotHourAligned,
		},
		{
			name: "end before start",
			mutate: func(t *testing.T, req *Request) {
				req.StartTime = mustTime(t, "12:00")
				req.EndTime = mustTime(t, "10:00")
			},
			expectedErr: ErrInvalidTimeRange,
		},
		{
			name: "end equals start",
			mutate: func(t *testing.T, req *Request) {
				req.EndTime = req.StartTime
			},
			expectedErr: ErrInvalidTimeRange,
		},
		{
			name: "same-day start already passed",
			mutate: func(t *testing.T, req *Request) {
				// now = 2025-06-01 09:00
				req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
				req.StartTime = mustTime(t, "08:00")
				req.EndTime = mustTime(t, "09:00")
			},
			expectedErr: ErrTimeInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, memberQuote())

			req := validRequest(t)
			tt.mutate(t, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	f := newFixture(t, memberQuote())

	req := validRequest(t)
	req.PaymentMethod = domain.PaymentMethod("Barter")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_FeeMismatch(t *testing.T) {
	f := newFixture(t, memberQuote())

	req := validRequest(t)
	req.SubmittedFee = 1

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFeeMismatch)

	// Ничего не записано и не списано
	assert.Nil(t, f.bookings.created)
	assert.Zero(t, f.slots.decrementCalls)
}

func TestUseCase_Execute_BookingConflict(t *testing.T) {
	f := newFixture(t, memberQuote())
	f.bookings.overlapping = []*domain.Booking{{ID: 7, Status: domain.StatusConfirmed}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Zero(t, f.slots.decrementCalls)
}

func TestUseCase_Execute_SlotUnavailable(t *testing.T) {
	t.Run("missing slot rows", func(t *testing.T) {
		f := newFixture(t, memberQuote())
		f.slots.slots = f.slots.slots[:1] // окно на 2 часа, слот один

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("exhausted slot", func(t *testing.T) {
		f := newFixture(t, memberQuote())
		f.slots.slots[1].RemainingCapacity = 0

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Zero(t, f.slots.decrementCalls)
	})

	t.Run("lost decrement race", func(t *testing.T) {
		f := newFixture(t, memberQuote())
		f.slots.decrementReturns = 1

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Nil(t, f.bookings.created)
	})
}

func TestUseCase_Execute_CoachZeroesSlots(t *testing.T) {
	feeSvc := &fakeFeeService{quote: &fees.QuoteResponse{Fee: 0, Role: domain.RoleCoach, DurationMinutes: 120}}
	f := newFixture(t, feeSvc)

	req := validRequest(t)
	req.SubmittedFee = 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.slots.zeroCalls)
	assert.Zero(t, f.slots.decrementCalls)
	assert.False(t, resp.IsPaid)
}

func TestUseCase_Execute_RoleNotAllowed(t *testing.T) {
	feeSvc := &fakeFeeService{err: fees.ErrRoleNotAllowed}
	f := newFixture(t, feeSvc)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestUseCase_Execute_InactiveFacility(t *testing.T) {
	f := newFixture(t, memberQuote())

	bookings := &fakeBookingRepo{}
	facility := &fakeFacilityRepo{facility: &domain.Facility{ID: 1, HourlyPrice: 20, IsActive: false}}
	uc := NewUseCase(bookings, f.slots, facility, memberQuote(), fakeTxManager{}, &fakePublisher{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrFacilityInactive)
}
