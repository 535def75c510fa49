package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateService проверяет, что услугу можно забронировать в этом бизнесе
func validateService(service *domain.Service, businessID int64) error {
	if service.BusinessID != businessID || !service.IsActive {
		return ErrServiceNotFound
	}
	return nil
}
