package calculate_fee

import (
	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
)

// FeeResponse HTTP response model
type FeeResponse struct {
	Fee             float64 `json:"fee"`
	Role            string  `json:"role"`
	DurationMinutes int     `json:"durationMinutes"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *fees.QuoteResponse) *FeeResponse {
	return &FeeResponse{
		Fee:             resp.Fee,
		Role:            string(resp.Role),
		DurationMinutes: resp.DurationMinutes,
	}
}
