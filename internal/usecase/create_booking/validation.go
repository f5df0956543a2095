package create_booking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pablobarber/booking-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(req.CustomerEmail) {
		return fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceNames) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceNames) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: too many services in one booking", ErrInvalidInput)
	}
	for _, name := range req.ServiceNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: service name must not be empty", ErrInvalidInput)
		}
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}
