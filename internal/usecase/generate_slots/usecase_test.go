package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
)

type fakeSlotRepo struct {
	latest  *time.Time
	created []*domain.Slot
}

func (f *fakeSlotRepo) LatestSlotDate(_ context.Context, _ int64) (*time.Time, error) {
	return f.latest, nil
}

func (f *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.Slot) (int64, error) {
	f.created = append(f.created, slots...)
	return int64(len(slots)), nil
}

type fakeFacilityRepo struct {
	facility *domain.Facility
	err      error
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, f.err
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

const hoursPerDay = domain.ClosingHour - domain.OpeningHour + 1

func newFixture(latest *time.Time) (*UseCase, *fakeSlotRepo) {
	slots := &fakeSlotRepo{latest: latest}
	facility := &fakeFacilityRepo{facility: &domain.Facility{ID: 1, IsActive: true}}

	uc := NewUseCase(slots, facility, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}

	return uc, slots
}

func TestUseCase_Execute_FreshStart(t *testing.T) {
	uc, slots := newFixture(nil)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Months: 1, Capacity: 5})
	require.NoError(t, err)

	// [2025-06-01, 2025-07-01] включительно: 31 день
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), resp.FromDate)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), resp.ToDate)
	assert.Equal(t, int64(31*hoursPerDay), resp.CreatedCount)
	assert.Len(t, slots.created, 31*hoursPerDay)

	// Первый и последний слоты первого дня
	first := slots.created[0]
	assert.Equal(t, "08:00", first.StartTime.String())
	assert.Equal(t, "09:00", first.EndTime.String())
	assert.Equal(t, 5, first.InitialCapacity)
	assert.Equal(t, 5, first.RemainingCapacity)
	assert.False(t, first.IsClass)

	last := slots.created[hoursPerDay-1]
	assert.Equal(t, "22:00", last.StartTime.String())
	assert.Equal(t, "23:00", last.EndTime.String())
}

func TestUseCase_Execute_Continuation(t *testing.T) {
	latest := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	uc, slots := newFixture(&latest)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Months: 1, Capacity: 3})
	require.NoError(t, err)

	// Генерация продолжается со дня после последнего слота
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.FromDate)
	assert.Equal(t, time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), resp.ToDate)

	require.NotEmpty(t, slots.created)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), slots.created[0].SlotDate)
}

func TestUseCase_Execute_StaleLatestDate(t *testing.T) {
	// Последний слот в прошлом: генерация начинается с сегодняшнего дня
	latest := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	uc, _ := newFixture(&latest)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Months: 1, Capacity: 3})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), resp.FromDate)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero facility", req: &Request{FacilityID: 0, Months: 1, Capacity: 5}},
		{name: "months too small", req: &Request{FacilityID: 1, Months: 0, Capacity: 5}},
		{name: "months too large", req: &Request{FacilityID: 1, Months: 13, Capacity: 5}},
		{name: "zero capacity", req: &Request{FacilityID: 1, Months: 1, Capacity: 0}},
		{name: "capacity too large", req: &Request{FacilityID: 1, Months: 1, Capacity: 501}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newFixture(nil)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_FacilityChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		facility := &fakeFacilityRepo{err: facilityRepo.ErrFacilityNotFound}
		uc := NewUseCase(slots, facility, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{FacilityID: 9, Months: 1, Capacity: 5})
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		slots := &fakeSlotRepo{}
		facility := &fakeFacilityRepo{facility: &domain.Facility{ID: 1, IsActive: false}}
		uc := NewUseCase(slots, facility, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Months: 1, Capacity: 5})
		assert.ErrorIs(t, err, ErrFacilityInactive)
	})
}
