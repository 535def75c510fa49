package media

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	ErrBusinessNotFound = access.ErrBusinessNotFound
	ErrAccessDenied     = access.ErrAccessDenied

	// ErrUnsupportedContentType загружать можно только jpeg, png и webp
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrInvalidKey ключ не относится к бизнесу
	ErrInvalidKey = errors.New("invalid object key")

	// ErrStorageUnavailable хранилище не настроено
	ErrStorageUnavailable = errors.New("object storage is not configured")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("media service: internal error")
)
