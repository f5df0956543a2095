package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/pablobarber/booking-service/internal/api/handlers"
	createBooking "github.com/pablobarber/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidBody        = "cuerpo de la petición incorrecto"
	msgInvalidDate        = "formato de fecha incorrecto, se espera YYYY-MM-DD"
	msgInvalidInput       = "datos de la reserva incorrectos"
	msgDateInPast         = "no se puede reservar en una fecha pasada"
	msgShopClosed         = "el salón está cerrado ese día"
	msgOutsideHours       = "la cita no cabe dentro del horario de apertura"
	msgStaffNotFound      = "profesional no encontrado"
	msgServiceNotFound    = "alguno de los servicios no existe"
	msgStaffAlreadyBooked = "el profesional ya tiene una cita a esa hora"
	msgNoStaffAvailable   = "no queda ningún profesional libre a esa hora"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in the past: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrShopClosed):
			h.logger.Warn("POST /appointments - Shop closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found")
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: services=%v", req.Services)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffAlreadyBooked):
			h.logger.Warn("POST /appointments - Staff already booked: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgStaffAlreadyBooked)

		case errors.Is(err, createBooking.ErrNoStaffAvailable):
			h.logger.Warn("POST /appointments - No staff available: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgNoStaffAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to create booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Booking created successfully: id=%d", result.Appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
