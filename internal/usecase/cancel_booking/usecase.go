package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
)

// Request модель запроса на отмену записи по токену из письма
type Request struct {
	Token string
}

// UseCase use case для отмены неподтвержденной записи по токену
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи.
// Путь по токену отменяет только pending записи: подтвержденная запись
// уже имеет событие в календаре и отменяется авторизованным запросом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apptRepo.ErrTokenNotFound) {
			uc.logger.Warn("CancelBooking: token not found")
			return ErrTokenNotFound
		}
		uc.logger.Error("CancelBooking: failed to get appointment by token: %v", err)
		return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.IsConfirmed() {
		uc.logger.Warn("CancelBooking: appointment id=%d is confirmed, token path refuses", appt.ID)
		return ErrAlreadyConfirmed
	}

	if err := uc.appointmentRepo.Delete(ctx, appt.ID); err != nil {
		uc.logger.Error("CancelBooking: failed to delete appointment id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: deleted pending appointment id=%d", appt.ID)

	return nil
}
