package get_day_schedule

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/usecase/get_day_schedule"
)

type GetDayScheduleUseCase interface {
	Execute(ctx context.Context, req *get_day_schedule.Request) (*get_day_schedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
