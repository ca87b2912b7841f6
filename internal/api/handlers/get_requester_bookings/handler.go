package get_requester_bookings

import (
	"net/http"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/api/middleware"
)

const msgMissingEmail = "не указан email заказчика"

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

// Handle GET /api/v1/bookings?email=&includeCancelled=
// Без параметра email возвращает бронирования аутентифицированного пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	email := query.Get("email")
	if email == "" {
		email, _ = middleware.GetUserEmail(r.Context())
	}
	if email == "" {
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	includeCancelled := query.Get("includeCancelled") == "true"

	bookings, err := h.service.ListByEmail(r.Context(), email, includeCancelled)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: email=%s, error=%v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Retrieved %d bookings: email=%s", len(bookings), email)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(email, bookings))
}
