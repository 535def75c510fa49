package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64   `json:"-"`
	BusinessID      int64   `json:"-"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	BufferMinutes   int     `json:"bufferMinutes"`
	PriceCents      int64   `json:"priceCents"`
	Currency        *string `json:"currency,omitempty"` // По умолчанию валюта платформы
}

// UpdateServiceRequest частичное обновление услуги
type UpdateServiceRequest struct {
	UserID          int64   `json:"-"`
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	BufferMinutes   *int    `json:"bufferMinutes,omitempty"`
	PriceCents      *int64  `json:"priceCents,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ToDomainService конвертирует запрос в domain модель
func (r *CreateServiceRequest) ToDomainService(defaultCurrency string) *domain.Service {
	currency := defaultCurrency
	if r.Currency != nil && *r.Currency != "" {
		currency = strings.ToLower(*r.Currency)
	}
	return &domain.Service{
		BusinessID:      r.BusinessID,
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		Category:        r.Category,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
		PriceCents:      r.PriceCents,
		Currency:        currency,
		IsActive:        true,
	}
}

// ApplyTo применяет изменения к услуге
func (r *UpdateServiceRequest) ApplyTo(s *domain.Service) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.Category != nil {
		s.Category = r.Category
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.PriceCents != nil {
		s.PriceCents = *r.PriceCents
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	BufferMinutes   int       `json:"bufferMinutes"`
	PriceCents      int64     `json:"priceCents"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		DurationMinutes: s.DurationMinutes,
		BufferMinutes:   s.BufferMinutes,
		PriceCents:      s.PriceCents,
		Currency:        s.Currency,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список
func FromDomainServiceList(list []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, s := range list {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
