package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pablobarber/booking-service/internal/api/handlers"
	"github.com/pablobarber/booking-service/internal/api/middleware"
	"github.com/pablobarber/booking-service/internal/service/appointments"
)

const (
	msgInvalidID           = "identificador de cita incorrecto"
	msgMissingIdentity     = "se requiere identificación para anular la cita"
	msgAppointmentNotFound = "cita no encontrada"
	msgAccessDenied        = "solo puedes anular tus propias citas"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{id}
// Авторизованная отмена: владелец записи или администратор
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	requesterEmail := middleware.GetUserEmail(r.Context())
	if requesterEmail == "" {
		h.logger.Warn("DELETE /appointments/{id} - Missing identity: id=%d", id)
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	if err := h.service.Cancel(r.Context(), id, requesterEmail); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: id=%d", id)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment cancelled: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
