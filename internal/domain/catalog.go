package domain

import "time"

// Service услуга из каталога бизнеса (стрижка, маникюр, массаж...)
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Description     *string
	Category        *string
	DurationMinutes int
	BufferMinutes   int // Время на подготовку после услуги
	PriceCents      int64
	Currency        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalMinutes длительность с учетом буфера - столько времени мастер занят
func (s *Service) TotalMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
