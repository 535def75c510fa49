package delete_settings

import "context"

type SettingsService interface {
	Delete(ctx context.Context, businessID, userID int64, serviceID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
