package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модели

// CreateBusinessRequest запрос на создание бизнеса
type CreateBusinessRequest struct {
	UserID      int64   `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Timezone    string  `json:"timezone"`
}

// UpdateBusinessRequest частичное обновление профиля
// Обновляются только переданные поля
type UpdateBusinessRequest struct {
	UserID      int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// SearchRequest параметры поиска
type SearchRequest struct {
	City     *string
	Category *string
	Query    *string
	Limit    int
	Offset   int
}

// ApplyTo применяет изменения к бизнесу
func (r *UpdateBusinessRequest) ApplyTo(b *domain.Business) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Description != nil {
		b.Description = r.Description
	}
	if r.Category != nil {
		b.Category = domain.BusinessCategory(*r.Category)
	}
	if r.Address != nil {
		b.Address = *r.Address
	}
	if r.City != nil {
		b.City = *r.City
	}
	if r.Phone != nil {
		b.Phone = r.Phone
	}
	if r.Email != nil {
		b.Email = r.Email
	}
	if r.Timezone != nil {
		b.Timezone = *r.Timezone
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
}

// Response модели

// BusinessResponse публичный профиль бизнеса
type BusinessResponse struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"ownerId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    *string   `json:"description,omitempty"`
	Category       string    `json:"category"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Timezone       string    `json:"timezone"`
	CoverImageURL  *string   `json:"coverImageUrl,omitempty"`
	ChargesEnabled bool      `json:"chargesEnabled"`
	PayoutsEnabled bool      `json:"payoutsEnabled"`
	RatingAverage  float64   `json:"ratingAverage"`
	RatingCount    int       `json:"ratingCount"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BusinessListResponse список бизнесов
type BusinessListResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// FromDomainBusiness конвертирует domain модель в DTO
func FromDomainBusiness(b *domain.Business, publicURL func(key string) string) *BusinessResponse {
	if b == nil {
		return nil
	}

	resp := &BusinessResponse{
		ID:             b.ID,
		OwnerID:        b.OwnerID,
		Name:           b.Name,
		Slug:           b.Slug,
		Description:    b.Description,
		Category:       string(b.Category),
		Address:        b.Address,
		City:           b.City,
		Phone:          b.Phone,
		Email:          b.Email,
		Timezone:       b.Timezone,
		ChargesEnabled: b.ChargesEnabled,
		PayoutsEnabled: b.PayoutsEnabled,
		RatingAverage:  b.RatingAverage,
		RatingCount:    b.RatingCount,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.CoverImageKey != nil && publicURL != nil {
		url := publicURL(*b.CoverImageKey)
		resp.CoverImageURL = &url
	}

	return resp
}

// FromDomainBusinessList конвертирует список domain моделей в DTO
func FromDomainBusinessList(list []*domain.Business, publicURL func(key string) string) *BusinessListResponse {
	resp := &BusinessListResponse{
		Businesses: make([]BusinessResponse, 0, len(list)),
	}
	for _, b := range list {
		resp.Businesses = append(resp.Businesses, *FromDomainBusiness(b, publicURL))
	}
	return resp
}
