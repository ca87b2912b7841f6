package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/api/middleware"
	createBooking "github.com/m04kA/CMS-FacilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "дата бронирования уже прошла"
	msgNotHourAligned     = "время бронирования должно быть кратно часу"
	msgInvalidTimeRange   = "время конца должно быть позже времени начала"
	msgTimeInPast         = "время начала бронирования уже прошло"
	msgFacilityNotFound   = "объект не найден"
	msgFacilityInactive   = "объект недоступен для бронирования"
	msgBookingConflict    = "выбранное время пересекается с существующим бронированием"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgFeeMismatch        = "стоимость бронирования рассчитана неверно"
	msgRoleNotAllowed     = "бронирование недоступно для вашей роли"
	msgUnknownRole        = "неизвестная роль пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	requesterEmail, _ := middleware.GetUserEmail(r.Context())

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(requesterEmail)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past booking date: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrNotHourAligned):
			h.logger.Warn("POST /bookings - Not hour-aligned: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgNotHourAligned)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrTimeInPast):
			h.logger.Warn("POST /bookings - Start time passed: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrFacilityInactive):
			h.logger.Warn("POST /bookings - Facility inactive: facility_id=%d", req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgFacilityInactive)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Overlapping booking: facility_id=%d", req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgBookingConflict)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: facility_id=%d", req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrFeeMismatch):
			h.logger.Warn("POST /bookings - Fee mismatch: facility_id=%d, submitted=%.2f", req.FacilityID, req.Fee)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgFeeMismatch)

		case errors.Is(err, createBooking.ErrRoleNotAllowed):
			h.logger.Warn("POST /bookings - Role not allowed: facility_id=%d", req.FacilityID)
			handlers.RespondForbidden(w, msgRoleNotAllowed)

		case errors.Is(err, createBooking.ErrUnknownRole):
			h.logger.Warn("POST /bookings - Unknown role: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgUnknownRole)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: facility_id=%d, error=%v",
				req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, facility_id=%d",
		result.ID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
