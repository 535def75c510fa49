package objectstorage

import "errors"

var (
	// ErrNotConfigured возвращается, когда бакет не задан
	ErrNotConfigured = errors.New("object storage: not configured")

	// ErrPresign возвращается при ошибке подписи URL
	ErrPresign = errors.New("object storage: failed to presign request")
)
