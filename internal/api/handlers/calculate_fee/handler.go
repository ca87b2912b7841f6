package calculate_fee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/service/fees"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

const (
	msgInvalidFacilityID = "некорректный идентификатор объекта"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTimeRange  = "время конца должно быть позже времени начала"
	msgFacilityNotFound  = "объект не найден"
	msgRoleNotAllowed    = "бронирование недоступно для вашей роли"
	msgUnknownRole       = "неизвестная роль пользователя"
)

type Handler struct {
	service FeeService
	logger  Logger
}

func NewHandler(service FeeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/fee?startTime=&endTime=&email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/fee - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, err := types.NewTimeStringFromString(query.Get("endTime"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	req := &fees.QuoteRequest{
		FacilityID:     facilityID,
		StartTime:      startTime,
		EndTime:        endTime,
		CustomerEmail:  query.Get("email"),
		RequesterEmail: r.Header.Get("X-User-Email"),
	}

	result, err := h.service.Quote(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, fees.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/fee - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, fees.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, fees.ErrRoleNotAllowed):
			h.logger.Warn("GET /facilities/{id}/fee - Role not allowed: facility_id=%d", facilityID)
			handlers.RespondForbidden(w, msgRoleNotAllowed)

		case errors.Is(err, fees.ErrUnknownRole):
			handlers.RespondBadRequest(w, msgUnknownRole)

		default:
			h.logger.Error("GET /facilities/{id}/fee - Failed to compute fee: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/fee - Fee computed: facility_id=%d, fee=%.2f, role=%s",
		facilityID, result.Fee, result.Role)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
