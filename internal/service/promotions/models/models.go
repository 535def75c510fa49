package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// Request модели

// BundleItemDTO позиция комплекта
type BundleItemDTO struct {
	Kind   string `json:"kind"` // service | product
	ItemID int64  `json:"itemId"`
}

// PromotionFields определение промоакции
type PromotionFields struct {
	Code               *string         `json:"code,omitempty"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	Type               string          `json:"type"`
	Scope              string          `json:"scope"`
	Value              int64           `json:"value"`
	TargetIDs          []int64         `json:"targetIds,omitempty"`
	BundleItems        []BundleItemDTO `json:"bundleItems,omitempty"`
	BuyQuantity        int             `json:"buyQuantity,omitempty"`
	GetQuantity        int             `json:"getQuantity,omitempty"`
	GetDiscountPercent int             `json:"getDiscountPercent,omitempty"`
	MinOrderCents      int64           `json:"minOrderCents,omitempty"`
	MaxDiscountCents   *int64          `json:"maxDiscountCents,omitempty"`
	UsageLimit         *int            `json:"usageLimit,omitempty"`
	PerCustomerLimit   *int            `json:"perCustomerLimit,omitempty"`
	FirstTimeOnly      bool            `json:"firstTimeOnly,omitempty"`
	StartsAt           *time.Time      `json:"startsAt,omitempty"`
	EndsAt             *time.Time      `json:"endsAt,omitempty"`
}

// CreatePromotionRequest запрос на создание промоакции
type CreatePromotionRequest struct {
	UserID     int64 `json:"-"`
	BusinessID int64 `json:"-"`
	PromotionFields
}

// UpdatePromotionRequest полная замена определения промоакции
// Счётчик использований сохраняется
type UpdatePromotionRequest struct {
	UserID   int64 `json:"-"`
	IsActive *bool `json:"isActive,omitempty"`
	PromotionFields
}

// ApplyTo переносит определение в domain модель
func (f *PromotionFields) ApplyTo(p *domain.Promotion) {
	p.Code = normalizeCode(f.Code)
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	p.Type = domain.PromotionType(f.Type)
	p.Scope = domain.PromotionScope(f.Scope)
	p.Value = f.Value
	p.TargetIDs = f.TargetIDs
	p.BundleItems = make([]domain.BundleItem, 0, len(f.BundleItems))
	for _, item := range f.BundleItems {
		p.BundleItems = append(p.BundleItems, domain.BundleItem{Kind: domain.ItemKind(item.Kind), ItemID: item.ItemID})
	}
	p.BuyQuantity = f.BuyQuantity
	p.GetQuantity = f.GetQuantity
	p.GetDiscountPercent = f.GetDiscountPercent
	p.MinOrderCents = f.MinOrderCents
	p.MaxDiscountCents = f.MaxDiscountCents
	p.UsageLimit = f.UsageLimit
	p.PerCustomerLimit = f.PerCustomerLimit
	p.FirstTimeOnly = f.FirstTimeOnly
	p.StartsAt = f.StartsAt
	p.EndsAt = f.EndsAt
}

// Response модели

// PromotionResponse промоакция
type PromotionResponse struct {
	ID         int64 `json:"id"`
	BusinessID int64 `json:"businessId"`
	PromotionFields
	UsageCount int       `json:"usageCount"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PromotionListResponse список промоакций
type PromotionListResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
}

// FromDomainPromotion конвертирует domain модель в DTO
func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	if p == nil {
		return nil
	}

	bundle := make([]BundleItemDTO, 0, len(p.BundleItems))
	for _, item := range p.BundleItems {
		bundle = append(bundle, BundleItemDTO{Kind: string(item.Kind), ItemID: item.ItemID})
	}

	return &PromotionResponse{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		PromotionFields: PromotionFields{
			Code:               p.Code,
			Name:               p.Name,
			Description:        p.Description,
			Type:               string(p.Type),
			Scope:              string(p.Scope),
			Value:              p.Value,
			TargetIDs:          p.TargetIDs,
			BundleItems:        bundle,
			BuyQuantity:        p.BuyQuantity,
			GetQuantity:        p.GetQuantity,
			GetDiscountPercent: p.GetDiscountPercent,
			MinOrderCents:      p.MinOrderCents,
			MaxDiscountCents:   p.MaxDiscountCents,
			UsageLimit:         p.UsageLimit,
			PerCustomerLimit:   p.PerCustomerLimit,
			FirstTimeOnly:      p.FirstTimeOnly,
			StartsAt:           p.StartsAt,
			EndsAt:             p.EndsAt,
		},
		UsageCount: p.UsageCount,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
}

// FromDomainPromotionList конвертирует список
func FromDomainPromotionList(list []*domain.Promotion) *PromotionListResponse {
	resp := &PromotionListResponse{Promotions: make([]PromotionResponse, 0, len(list))}
	for _, p := range list {
		resp.Promotions = append(resp.Promotions, *FromDomainPromotion(p))
	}
	return resp
}

// normalizeCode пустой код хранится как NULL (автоматическая промоакция)
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	normalized := domain.NormalizeCode(*code)
	if normalized == "" {
		return nil
	}
	return &normalized
}
