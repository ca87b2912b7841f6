package generate_class_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/generate_class_slots"
)

const (
	msgInvalidFacilityID = "некорректный идентификатор объекта"
	msgInvalidJSON       = "некорректный формат запроса"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput      = "некорректные параметры генерации"
	msgFacilityNotFound  = "объект не найден"
	msgFacilityInactive  = "объект деактивирован"
)

type Handler struct {
	useCase GenerateClassSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateClassSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{facilityId}/class-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/class-slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req GenerateClassSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/class-slots - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJSON)
		return
	}

	ucReq, err := req.ToUseCaseRequest(facilityID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, generate_class_slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generate_class_slots.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/class-slots - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, generate_class_slots.ErrFacilityInactive):
			h.logger.Warn("POST /facilities/{id}/class-slots - Facility inactive: facility_id=%d", facilityID)
			handlers.RespondError(w, http.StatusConflict, msgFacilityInactive)

		default:
			h.logger.Error("POST /facilities/{id}/class-slots - Failed to generate class slots: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/class-slots - Generated class slots: facility_id=%d, created=%d, overwritten=%d, skipped=%d",
		facilityID, result.CreatedCount, result.OverwrittenCount, len(result.SkippedDays))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
