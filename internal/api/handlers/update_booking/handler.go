package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	updateBooking "github.com/m04kA/CMS-FacilityService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingCancelled   = "бронирование отменено и не может быть изменено"
	msgPastDate           = "дата бронирования уже прошла"
	msgNotHourAligned     = "время бронирования должно быть кратно часу"
	msgInvalidTimeRange   = "время конца должно быть позже времени начала"
	msgTimeInPast         = "время начала бронирования уже прошло"
	msgDurationChanged    = "длительность бронирования изменять нельзя"
	msgBookingConflict    = "выбранное время пересекается с существующим бронированием"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrBookingCancelled):
			h.logger.Warn("PUT /bookings/{id} - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, updateBooking.ErrNotHourAligned):
			handlers.RespondBadRequest(w, msgNotHourAligned)

		case errors.Is(err, updateBooking.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateBooking.ErrTimeInPast):
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, updateBooking.ErrDurationChanged):
			h.logger.Warn("PUT /bookings/{id} - Duration change rejected: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgDurationChanged)

		case errors.Is(err, updateBooking.ErrBookingConflict):
			h.logger.Warn("PUT /bookings/{id} - Overlapping booking: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingConflict)

		case errors.Is(err, updateBooking.ErrSlotUnavailable):
			h.logger.Warn("PUT /bookings/{id} - Slot unavailable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
