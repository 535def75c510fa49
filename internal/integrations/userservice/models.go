package userservice

import "github.com/m04kA/SMC-BeautyMarketplace/internal/domain"

// ContactProfile модель контактов пользователя из UserService
type ContactProfile struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Locale            string  `json:"locale"`
	EmailNotification bool    `json:"email_notifications"`
	SMSNotification   bool    `json:"sms_notifications"`
}

// ToDomain преобразует ответ UserService в доменную модель
func (p ContactProfile) ToDomain() *domain.ContactProfile {
	return &domain.ContactProfile{
		UserID:     p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Locale:     p.Locale,
		EmailOptIn: p.EmailNotification,
		SMSOptIn:   p.SMSNotification,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
