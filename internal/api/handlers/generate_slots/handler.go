package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/generate_slots"
)

const (
	msgInvalidFacilityID = "некорректный идентификатор объекта"
	msgInvalidJSON       = "некорректный формат запроса"
	msgInvalidInput      = "некорректные параметры генерации"
	msgFacilityNotFound  = "объект не найден"
	msgFacilityInactive  = "объект деактивирован"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{facilityId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/slots - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJSON)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(facilityID))
	if err != nil {
		switch {
		case errors.Is(err, generate_slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generate_slots.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/slots - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, generate_slots.ErrFacilityInactive):
			h.logger.Warn("POST /facilities/{id}/slots - Facility inactive: facility_id=%d", facilityID)
			handlers.RespondError(w, http.StatusConflict, msgFacilityInactive)

		default:
			h.logger.Error("POST /facilities/{id}/slots - Failed to generate slots: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/slots - Generated %d slots: facility_id=%d, from=%s, to=%s",
		result.CreatedCount, facilityID, result.FromDate.Format("2006-01-02"), result.ToDate.Format("2006-01-02"))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
