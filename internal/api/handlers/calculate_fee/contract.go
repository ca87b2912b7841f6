package calculate_fee

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
)

type FeeService interface {
	Quote(ctx context.Context, req *fees.QuoteRequest) (*fees.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
