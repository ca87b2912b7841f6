package generate_class_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	slotRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/slot"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

type fakeSlotRepo struct {
	existing  map[string]*domain.Slot // ключ: дата "2006-01-02"
	created   []*domain.Slot
	overlayed []int64
}

func (f *fakeSlotRepo) FindOverlapping(_ context.Context, _ int64, date time.Time, _, _ types.TimeString) (*domain.Slot, error) {
	if s, ok := f.existing[date.Format(domain.DateFormat)]; ok {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) OverlayClass(_ context.Context, id int64, _ int) error {
	f.overlayed = append(f.overlayed, id)
	return nil
}

func (f *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.Slot) (int64, error) {
	f.created = append(f.created, slots...)
	return int64(len(slots)), nil
}

type fakeBookingRepo struct {
	bookedDays map[string]bool
}

func (f *fakeBookingRepo) HasActiveOverlapping(_ context.Context, _ int64, date time.Time, _, _ types.TimeString) (bool, error) {
	return f.bookedDays[date.Format(domain.DateFormat)], nil
}

type fakeFacilityRepo struct {
	facility *domain.Facility
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newFixture(slots *fakeSlotRepo, bookings *fakeBookingRepo) *UseCase {
	facility := &fakeFacilityRepo{facility: &domain.Facility{ID: 1, IsActive: true}}

	uc := NewUseCase(slots, bookings, facility, fakeTxManager{}, nopLogger{})
	// Воскресенье 2025-06-01
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	return uc
}

func classRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		FacilityID: 1,
		Months:     1,
		Capacity:   10,
		DayOfWeek:  time.Monday,
		StartTime:  mustTime(t, "18:00"),
		EndTime:    mustTime(t, "19:30"),
	}
}

func TestUseCase_Execute_CreatesOnFreeDays(t *testing.T) {
	slots := &fakeSlotRepo{existing: map[string]*domain.Slot{}}
	bookings := &fakeBookingRepo{bookedDays: map[string]bool{}}
	uc := newFixture(slots, bookings)

	resp, err := uc.Execute(context.Background(), classRequest(t))
	require.NoError(t, err)

	// Понедельники в [2025-06-01, 2025-07-01]: 02, 09, 16, 23, 30 июня
	assert.Equal(t, int64(5), resp.CreatedCount)
	assert.Zero(t, resp.OverwrittenCount)
	assert.Empty(t, resp.SkippedDays)

	require.Len(t, slots.created, 5)
	for _, s := range slots.created {
		assert.Equal(t, time.Monday, s.SlotDate.Weekday())
		assert.True(t, s.IsClass)
		assert.Equal(t, 10, s.InitialCapacity)
		assert.Equal(t, "18:00", s.StartTime.String())
		assert.Equal(t, "19:30", s.EndTime.String())
	}
}

func TestUseCase_Execute_OverlayAndSkip(t *testing.T) {
	start := mustTime(t, "18:00")
	end := mustTime(t, "19:00")

	slots := &fakeSlotRepo{existing: map[string]*domain.Slot{
		// Свободный слот: перезаписывается
		"2025-06-02": {ID: 100, FacilityID: 1, StartTime: start, EndTime: end, InitialCapacity: 5, RemainingCapacity: 5},
		// Слот с бронированием: день пропускается
		"2025-06-09": {ID: 101, FacilityID: 1, StartTime: start, EndTime: end, InitialCapacity: 5, RemainingCapacity: 4},
	}}
	bookings := &fakeBookingRepo{bookedDays: map[string]bool{"2025-06-09": true}}
	uc := newFixture(slots, bookings)

	resp, err := uc.Execute(context.Background(), classRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.CreatedCount) // 16, 23, 30 июня
	assert.Equal(t, int64(1), resp.OverwrittenCount)
	assert.Equal(t, []int64{100}, slots.overlayed)

	require.Len(t, resp.SkippedDays, 1)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), resp.SkippedDays[0])
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "months out of range", mutate: func(req *Request) { req.Months = 0 }},
		{name: "capacity out of range", mutate: func(req *Request) { req.Capacity = 0 }},
		{name: "inverted time range", mutate: func(req *Request) {
			req.StartTime = req.EndTime
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newFixture(&fakeSlotRepo{existing: map[string]*domain.Slot{}}, &fakeBookingRepo{bookedDays: map[string]bool{}})

			req := classRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
