package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

// UseCase use case сводки доступности объектов на день
type UseCase struct {
	facilityRepo FacilityRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo: facilityRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// Execute собирает сводку: объекты (с опциональным фильтром по категории),
// их слоты и активные бронирования на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	facilities, err := uc.facilityRepo.List(ctx, req.CategoryID)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list facilities: %v", err)
		return nil, fmt.Errorf("%w: failed to list facilities: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	slotsByFacility := make(map[int64][]*domain.Slot, len(facilities))
	for _, s := range slots {
		slotsByFacility[s.FacilityID] = append(slotsByFacility[s.FacilityID], s)
	}

	bookingsByFacility := make(map[int64][]*domain.Booking, len(facilities))
	for _, b := range bookings {
		bookingsByFacility[b.FacilityID] = append(bookingsByFacility[b.FacilityID], b)
	}

	resp := &Response{
		Date:       req.Date,
		Facilities: make([]*FacilitySchedule, 0, len(facilities)),
	}
	for _, f := range facilities {
		resp.Facilities = append(resp.Facilities, &FacilitySchedule{
			Facility: f,
			Slots:    slotsByFacility[f.ID],
			Bookings: bookingsByFacility[f.ID],
		})
	}

	uc.logger.Info("GetDaySchedule: date=%s, facilities=%d, slots=%d, bookings=%d",
		req.Date.Format(domain.DateFormat), len(facilities), len(slots), len(bookings))

	return resp, nil
}
