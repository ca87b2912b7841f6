package get_day_schedule

import (
	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/get_day_schedule"
)

// SlotItem слот объекта в сводке на день
type SlotItem struct {
	ID                int64  `json:"id"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	InitialCapacity   int    `json:"initialCapacity"`
	RemainingCapacity int    `json:"remainingCapacity"`
	IsClass           bool   `json:"isClass"`
}

// BookingItem активное бронирование в сводке на день
type BookingItem struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FacilityScheduleItem расписание одного объекта
type FacilityScheduleItem struct {
	FacilityID   int64          `json:"facilityId"`
	FacilityName string         `json:"facilityName"`
	CategoryID   int64          `json:"categoryId"`
	HourlyPrice  float64        `json:"hourlyPrice"`
	Slots        []*SlotItem    `json:"slots"`
	Bookings     []*BookingItem `json:"bookings"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date       string                  `json:"date"`
	Facilities []*FacilityScheduleItem `json:"facilities"`
}

// FromUseCaseResponse конвертирует usecase response в HTTP response
func FromUseCaseResponse(resp *get_day_schedule.Response) *DayScheduleResponse {
	facilities := make([]*FacilityScheduleItem, 0, len(resp.Facilities))
	for _, fs := range resp.Facilities {
		item := &FacilityScheduleItem{
			FacilityID:   fs.Facility.ID,
			FacilityName: fs.Facility.Name,
			CategoryID:   fs.Facility.CategoryID,
			HourlyPrice:  fs.Facility.HourlyPrice,
			Slots:        make([]*SlotItem, 0, len(fs.Slots)),
			Bookings:     make([]*BookingItem, 0, len(fs.Bookings)),
		}

		for _, s := range fs.Slots {
			item.Slots = append(item.Slots, &SlotItem{
				ID:                s.ID,
				StartTime:         s.StartTime.String(),
				EndTime:           s.EndTime.String(),
				InitialCapacity:   s.InitialCapacity,
				RemainingCapacity: s.RemainingCapacity,
				IsClass:           s.IsClass,
			})
		}

		for _, b := range fs.Bookings {
			item.Bookings = append(item.Bookings, &BookingItem{
				ID:        b.ID,
				StartTime: b.StartTime.String(),
				EndTime:   b.EndTime.String(),
			})
		}

		facilities = append(facilities, item)
	}

	return &DayScheduleResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Facilities: facilities,
	}
}
