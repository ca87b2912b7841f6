package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCategory = "некорректный идентификатор категории"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/day-schedule?date=&categoryId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &get_day_schedule.Request{Date: date}

	if raw := query.Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCategory)
			return
		}
		req.CategoryID = &categoryID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, get_day_schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /facilities/day-schedule - Failed to build schedule: date=%s, error=%v",
				query.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/day-schedule - Retrieved schedule for %d facilities: date=%s",
		len(result.Facilities), query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
