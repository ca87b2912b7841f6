package generate_class_slots

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/generate_class_slots"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// GenerateClassSlotsRequest HTTP request model
// DayOfWeek: 0 = воскресенье ... 6 = суббота
type GenerateClassSlotsRequest struct {
	Months    int    `json:"months"`
	Capacity  int    `json:"capacity"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в usecase request
func (r *GenerateClassSlotsRequest) ToUseCaseRequest(facilityID int64) (*generate_class_slots.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &generate_class_slots.Request{
		FacilityID: facilityID,
		Months:     r.Months,
		Capacity:   r.Capacity,
		DayOfWeek:  time.Weekday(r.DayOfWeek),
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// GenerateClassSlotsResponse HTTP response model
type GenerateClassSlotsResponse struct {
	CreatedCount     int64    `json:"createdCount"`
	OverwrittenCount int64    `json:"overwrittenCount"`
	SkippedDays      []string `json:"skippedDays"`
}

// FromUseCaseResponse конвертирует usecase response в HTTP response
func FromUseCaseResponse(resp *generate_class_slots.Response) *GenerateClassSlotsResponse {
	skipped := make([]string, 0, len(resp.SkippedDays))
	for _, day := range resp.SkippedDays {
		skipped = append(skipped, day.Format(domain.DateFormat))
	}

	return &GenerateClassSlotsResponse{
		CreatedCount:     resp.CreatedCount,
		OverwrittenCount: resp.OverwrittenCount,
		SkippedDays:      skipped,
	}
}
