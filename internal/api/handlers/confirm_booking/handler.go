package confirm_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/pablobarber/booking-service/internal/api/handlers"
	"github.com/pablobarber/booking-service/internal/domain"
	confirmBooking "github.com/pablobarber/booking-service/internal/usecase/confirm_booking"
)

type Handler struct {
	useCase  ConfirmBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ConfirmBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/confirm
// Ссылка из письма: ответ всегда HTML страница с исходом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput),
			errors.Is(err, confirmBooking.ErrTokenNotFound):
			h.logger.Warn("GET /appointments/confirm - Token not found")
			handlers.RespondHTML(w, http.StatusNotFound, pageNotFound())

		case errors.Is(err, confirmBooking.ErrAlreadyConfirmed):
			h.logger.Info("GET /appointments/confirm - Already confirmed")
			handlers.RespondHTML(w, http.StatusOK, pageAlreadyConfirmed())

		case errors.Is(err, confirmBooking.ErrCalendarUnavailable):
			h.logger.Error("GET /appointments/confirm - Calendar unavailable: %v", err)
			handlers.RespondHTML(w, http.StatusServiceUnavailable, pageCalendarUnavailable())

		default:
			h.logger.Error("GET /appointments/confirm - Failed to confirm: %v", err)
			handlers.RespondHTML(w, http.StatusInternalServerError, pageInternalError())
		}
		return
	}

	start := result.Appointment.StartTime.In(h.location)
	h.logger.Info("GET /appointments/confirm - Confirmed appointment id=%d", result.Appointment.ID)
	handlers.RespondHTML(w, http.StatusOK,
		pageConfirmed(start.Format(domain.DateFormat), start.Format(domain.TimeFormat)))
}
