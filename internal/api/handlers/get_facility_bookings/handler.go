package get_facility_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/domain"
)

const (
	msgInvalidFacilityID = "некорректный идентификатор объекта"
	msgInvalidDateFilter = "некорректный формат даты фильтра, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/bookings?from=&to=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	filter := domain.FacilityBookingsFilter{FacilityID: facilityID}

	query := r.URL.Query()

	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		filter.StartDate = &parsed
	}

	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		filter.EndDate = &parsed
	}

	filter.IncludeCancelled = query.Get("includeCancelled") == "true"

	bookings, err := h.service.ListByFacility(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /facilities/{id}/bookings - Failed to list bookings: facility_id=%d, error=%v",
			facilityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/{id}/bookings - Retrieved %d bookings: facility_id=%d",
		len(bookings), facilityID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(facilityID, bookings))
}
