package settings

import (
	"errors"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = access.ErrBusinessNotFound

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = access.ErrAccessDenied

	// ErrServiceNotFound возвращается, когда услуга не найдена в бизнесе
	ErrServiceNotFound = errors.New("service not found")

	// ErrSettingsNotFound возвращается, когда на этом уровне нет настроек
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings service: internal error")
)
