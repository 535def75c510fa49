package reviews

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	ErrBusinessNotFound = access.ErrBusinessNotFound
	ErrAccessDenied     = access.ErrAccessDenied

	// ErrBookingNotFound бронирование не найдено или принадлежит другому клиенту
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotCompleted отзыв можно оставить только после завершённого визита
	ErrBookingNotCompleted = errors.New("booking is not completed")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists")
	ErrAlreadyReplied = errors.New("review already has a reply")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("reviews service: internal error")
)
