package generate_slots

import (
	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Months   int `json:"months"`
	Capacity int `json:"capacity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в usecase request
func (r *GenerateSlotsRequest) ToUseCaseRequest(facilityID int64) *generate_slots.Request {
	return &generate_slots.Request{
		FacilityID: facilityID,
		Months:     r.Months,
		Capacity:   r.Capacity,
	}
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	CreatedCount int64  `json:"createdCount"`
	FromDate     string `json:"fromDate"`
	ToDate       string `json:"toDate"`
}

// FromUseCaseResponse конвертирует usecase response в HTTP response
func FromUseCaseResponse(resp *generate_slots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		CreatedCount: resp.CreatedCount,
		FromDate:     resp.FromDate.Format(domain.DateFormat),
		ToDate:       resp.ToDate.Format(domain.DateFormat),
	}
}
