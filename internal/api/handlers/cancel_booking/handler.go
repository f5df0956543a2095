package cancel_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pablobarber/booking-service/internal/api/handlers"
	cancelBooking "github.com/pablobarber/booking-service/internal/usecase/cancel_booking"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Pablo BarberShop</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 3em;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/cancel
// Ссылка из письма: отменяет только неподтвержденные записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	err := h.useCase.Execute(r.Context(), &cancelBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput),
			errors.Is(err, cancelBooking.ErrTokenNotFound):
			h.logger.Warn("GET /appointments/cancel - Token not found")
			handlers.RespondHTML(w, http.StatusNotFound, fmt.Sprintf(pageTemplate,
				"Reserva no encontrada",
				"El enlace no es válido o la reserva ya no existe."))

		case errors.Is(err, cancelBooking.ErrAlreadyConfirmed):
			h.logger.Warn("GET /appointments/cancel - Appointment already confirmed")
			handlers.RespondHTML(w, http.StatusConflict, fmt.Sprintf(pageTemplate,
				"La cita ya está confirmada",
				"Para anular una cita confirmada, contacta con el salón."))

		default:
			h.logger.Error("GET /appointments/cancel - Failed to cancel: %v", err)
			handlers.RespondHTML(w, http.StatusInternalServerError, fmt.Sprintf(pageTemplate,
				"Algo ha ido mal",
				"Inténtalo de nuevo más tarde."))
		}
		return
	}

	h.logger.Info("GET /appointments/cancel - Appointment cancelled")
	handlers.RespondHTML(w, http.StatusOK, fmt.Sprintf(pageTemplate,
		"Cita cancelada",
		"Tu reserva ha sido anulada. ¡Esperamos verte pronto!"))
}
