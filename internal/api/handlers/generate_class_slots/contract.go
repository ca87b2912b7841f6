package generate_class_slots

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/usecase/generate_class_slots"
)

type GenerateClassSlotsUseCase interface {
	Execute(ctx context.Context, req *generate_class_slots.Request) (*generate_class_slots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
