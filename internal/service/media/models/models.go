package models

import "time"

// CreateUploadURLRequest запрос ссылки на загрузку изображения
type CreateUploadURLRequest struct {
	UserID      int64  `json:"-"`
	BusinessID  int64  `json:"-"`
	Kind        string `json:"kind"` // cover | gallery | staff
	ContentType string `json:"contentType"`
}

// SetCoverRequest установка обложки из загруженного объекта
type SetCoverRequest struct {
	UserID     int64  `json:"-"`
	BusinessID int64  `json:"-"`
	Key        string `json:"key"`
}

// UploadURLResponse подписанная ссылка: клиент делает PUT с указанными заголовками
type UploadURLResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// CoverResponse обложка бизнеса
type CoverResponse struct {
	BusinessID int64  `json:"businessId"`
	Key        string `json:"key"`
	URL        string `json:"url"`
}
