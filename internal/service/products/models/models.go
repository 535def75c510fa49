package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	UserID        int64   `json:"-"`
	BusinessID    int64   `json:"-"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	SKU           *string `json:"sku,omitempty"`
	PriceCents    int64   `json:"priceCents"`
	Currency      *string `json:"currency,omitempty"`
	StockQuantity int     `json:"stockQuantity"`
}

func (r *CreateProductRequest) ToDomainProduct(defaultCurrency string) *domain.Product {
	currency := defaultCurrency
	if r.Currency != nil && *r.Currency != "" {
		currency = strings.ToLower(*r.Currency)
	}
	return &domain.Product{
		BusinessID:    r.BusinessID,
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		SKU:           normalizeSKU(r.SKU),
		PriceCents:    r.PriceCents,
		Currency:      currency,
		StockQuantity: r.StockQuantity,
		IsActive:      true,
	}
}

// UpdateProductRequest частичное обновление товара
type UpdateProductRequest struct {
	UserID        int64   `json:"-"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	SKU           *string `json:"sku,omitempty"`
	PriceCents    *int64  `json:"priceCents,omitempty"`
	StockQuantity *int    `json:"stockQuantity,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

func (r *UpdateProductRequest) ApplyTo(p *domain.Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.SKU != nil {
		p.SKU = normalizeSKU(r.SKU)
	}
	if r.PriceCents != nil {
		p.PriceCents = *r.PriceCents
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// ProductResponse товар
type ProductResponse struct {
	ID            int64     `json:"id"`
	BusinessID    int64     `json:"businessId"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	SKU           *string   `json:"sku,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	Currency      string    `json:"currency"`
	StockQuantity int       `json:"stockQuantity"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		PriceCents:    p.PriceCents,
		Currency:      p.Currency,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

func FromDomainProductList(list []*domain.Product) *ProductListResponse {
	resp := &ProductListResponse{Products: make([]ProductResponse, 0, len(list))}
	for _, p := range list {
		resp.Products = append(resp.Products, *FromDomainProduct(p))
	}
	return resp
}

// normalizeSKU пустой артикул хранится как NULL
func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*sku)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
