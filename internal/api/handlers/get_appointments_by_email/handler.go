package get_appointments_by_email

import (
	"errors"
	"net/http"

	"github.com/pablobarber/booking-service/internal/api/handlers"
	"github.com/pablobarber/booking-service/internal/api/middleware"
	"github.com/pablobarber/booking-service/internal/service/appointments"
)

const (
	msgMissingEmail = "el email es obligatorio"
	msgAccessDenied = "solo puedes consultar tus propias citas"
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

// Handle GET /api/v1/appointments
// Query params: email (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /appointments - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	requesterEmail := middleware.GetUserEmail(r.Context())

	result, err := h.service.ListByEmail(r.Context(), email, requesterEmail)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingEmail)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments - Access denied: email=%s", email)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Retrieved %d appointments for email=%s",
		len(result.Appointments), email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
