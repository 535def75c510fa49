package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// PromotionType тип скидки
type PromotionType string

const (
	PromotionPercentage  PromotionType = "percentage"
	PromotionFixedAmount PromotionType = "fixed_amount"
	PromotionBOGO        PromotionType = "bogo"
	PromotionBundle      PromotionType = "bundle"
)

// PromotionScope к чему применяется скидка
type PromotionScope string

const (
	ScopeService PromotionScope = "service"
	ScopeProduct PromotionScope = "product"
	ScopeOrder   PromotionScope = "order"
)

// ItemKind тип позиции корзины
type ItemKind string

const (
	ItemService ItemKind = "service"
	ItemProduct ItemKind = "product"
)

const defaultBOGODiscountPercent = 100

var (
	ErrPromotionInactive             = errors.New("promotion: inactive")
	ErrPromotionNotStarted           = errors.New("promotion: not started yet")
	ErrPromotionExpired              = errors.New("promotion: expired")
	ErrPromotionUsageLimitReached    = errors.New("promotion: usage limit reached")
	ErrPromotionCustomerLimitReached = errors.New("promotion: customer usage limit reached")
	ErrPromotionNotEligible          = errors.New("promotion: customer is not eligible")
	ErrPromotionBelowMinimum         = errors.New("promotion: order total is below minimum")
	ErrPromotionNotApplicable        = errors.New("promotion: no eligible items")
	ErrPromotionInvalid              = errors.New("promotion: invalid definition")
)

// BundleItem позиция, входящая в комплект
type BundleItem struct {
	Kind   ItemKind `json:"kind"`
	ItemID int64    `json:"itemId"`
}

// Promotion правило скидки бизнеса
type Promotion struct {
	ID          int64
	BusinessID  int64
	Code        *string // Хранится в верхнем регистре
	Name        string
	Description *string
	Type        PromotionType
	Scope       PromotionScope

	// Для percentage и bundle - процент, для fixed_amount - центы
	Value     int64
	TargetIDs []int64 // Пусто = все позиции в scope

	BundleItems        []BundleItem
	BuyQuantity        int
	GetQuantity        int
	GetDiscountPercent int

	MinOrderCents    int64
	MaxDiscountCents *int64
	UsageLimit       *int
	PerCustomerLimit *int
	UsageCount       int
	FirstTimeOnly    bool

	StartsAt *time.Time
	EndsAt   *time.Time
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine позиция корзины
type CartLine struct {
	Kind           ItemKind
	ItemID         int64
	UnitPriceCents int64
	Quantity       int
}

// TotalCents стоимость позиции
func (l CartLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart корзина, к которой применяется промоакция
type Cart struct {
	Lines []CartLine
}

// SubtotalCents сумма корзины без скидки
func (c Cart) SubtotalCents() int64 {
	var sum int64
	for _, l := range c.Lines {
		sum += l.TotalCents()
	}
	return sum
}

// CustomerUsage история клиента для проверки ограничений
type CustomerUsage struct {
	Redemptions       int  // Сколько раз клиент уже использовал промоакцию
	HasPriorPurchases bool // Есть завершённые записи или оплаченные заказы у бизнеса
}

// DiscountResult результат применения промоакции
type DiscountResult struct {
	SubtotalCents         int64
	EligibleSubtotalCents int64
	DiscountCents         int64
	TotalCents            int64
}

// Redemption использование промоакции клиентом в записи или заказе
type Redemption struct {
	ID            int64
	PromotionID   int64
	CustomerID    int64
	BookingID     *int64
	OrderID       *int64
	DiscountCents int64
	ReleasedAt    *time.Time // Заполняется при отмене/истечении
	CreatedAt     time.Time
}

// NormalizeCode приводит код промоакции к хранимому виду
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate проверяет корректность определения промоакции
func (p *Promotion) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrPromotionInvalid)
	}
	switch p.Scope {
	case ScopeService, ScopeProduct, ScopeOrder:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrPromotionInvalid, p.Scope)
	}

	switch p.Type {
	case PromotionPercentage:
		if p.Value < 1 || p.Value > 100 {
			return fmt.Errorf("%w: percentage must be between 1 and 100", ErrPromotionInvalid)
		}
	case PromotionFixedAmount:
		if p.Value <= 0 {
			return fmt.Errorf("%w: fixed amount must be positive", ErrPromotionInvalid)
		}
	case PromotionBOGO:
		if p.BuyQuantity < 1 || p.GetQuantity < 1 {
			return fmt.Errorf("%w: buy and get quantities must be positive", ErrPromotionInvalid)
		}
		if p.GetDiscountPercent < 0 || p.GetDiscountPercent > 100 {
			return fmt.Errorf("%w: get discount percent must be between 0 and 100 (0 = 100)", ErrPromotionInvalid)
		}
		if p.Scope == ScopeOrder {
			return fmt.Errorf("%w: bogo requires service or product scope", ErrPromotionInvalid)
		}
	case PromotionBundle:
		if p.Value < 1 || p.Value > 100 {
			return fmt.Errorf("%w: bundle percentage must be between 1 and 100", ErrPromotionInvalid)
		}
		if len(p.BundleItems) < 2 {
			return fmt.Errorf("%w: bundle needs at least two items", ErrPromotionInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrPromotionInvalid, p.Type)
	}

	if p.MinOrderCents < 0 {
		return fmt.Errorf("%w: min order must not be negative", ErrPromotionInvalid)
	}
	if p.MaxDiscountCents != nil && *p.MaxDiscountCents <= 0 {
		return fmt.Errorf("%w: max discount must be positive", ErrPromotionInvalid)
	}
	if p.UsageLimit != nil && *p.UsageLimit <= 0 {
		return fmt.Errorf("%w: usage limit must be positive", ErrPromotionInvalid)
	}
	if p.PerCustomerLimit != nil && *p.PerCustomerLimit <= 0 {
		return fmt.Errorf("%w: per-customer limit must be positive", ErrPromotionInvalid)
	}
	if p.StartsAt != nil && p.EndsAt != nil && !p.EndsAt.After(*p.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrPromotionInvalid)
	}
	return nil
}

// Evaluate проверяет применимость промоакции к корзине и считает скидку.
// Проверки идут в фиксированном порядке: статус и период, лимиты, минимальная сумма, позиции.
func (p *Promotion) Evaluate(cart Cart, usage CustomerUsage, now time.Time) (*DiscountResult, error) {
	if !p.IsActive {
		return nil, ErrPromotionInactive
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return nil, ErrPromotionNotStarted
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return nil, ErrPromotionExpired
	}

	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return nil, ErrPromotionUsageLimitReached
	}
	if p.PerCustomerLimit != nil && usage.Redemptions >= *p.PerCustomerLimit {
		return nil, ErrPromotionCustomerLimitReached
	}
	if p.FirstTimeOnly && usage.HasPriorPurchases {
		return nil, ErrPromotionNotEligible
	}

	subtotal := cart.SubtotalCents()
	if subtotal < p.MinOrderCents {
		return nil, ErrPromotionBelowMinimum
	}

	eligible := p.eligibleLines(cart)
	if len(eligible) == 0 {
		return nil, ErrPromotionNotApplicable
	}

	var eligibleSubtotal int64
	for _, l := range eligible {
		eligibleSubtotal += l.TotalCents()
	}

	var discount int64
	switch p.Type {
	case PromotionPercentage:
		discount = PercentOf(eligibleSubtotal, p.Value)
	case PromotionFixedAmount:
		discount = min(p.Value, eligibleSubtotal)
	case PromotionBOGO:
		discount = p.bogoDiscount(eligible)
	case PromotionBundle:
		var ok bool
		discount, ok = p.bundleDiscount(eligible)
		if !ok {
			return nil, ErrPromotionNotApplicable
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrPromotionInvalid, p.Type)
	}

	if p.MaxDiscountCents != nil && discount > *p.MaxDiscountCents {
		discount = *p.MaxDiscountCents
	}
	if discount > subtotal {
		discount = subtotal
	}

	return &DiscountResult{
		SubtotalCents:         subtotal,
		EligibleSubtotalCents: eligibleSubtotal,
		DiscountCents:         discount,
		TotalCents:            subtotal - discount,
	}, nil
}

// eligibleLines позиции корзины, попадающие под действие промоакции
func (p *Promotion) eligibleLines(cart Cart) []CartLine {
	lines := make([]CartLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if l.Quantity <= 0 {
			continue
		}
		if p.Type == PromotionBundle {
			if p.inBundle(l) {
				lines = append(lines, l)
			}
			continue
		}
		if p.matchesScope(l) {
			lines = append(lines, l)
		}
	}
	return lines
}

func (p *Promotion) matchesScope(l CartLine) bool {
	switch p.Scope {
	case ScopeOrder:
		return true
	case ScopeService:
		if l.Kind != ItemService {
			return false
		}
	case ScopeProduct:
		if l.Kind != ItemProduct {
			return false
		}
	default:
		return false
	}
	if len(p.TargetIDs) == 0 {
		return true
	}
	for _, id := range p.TargetIDs {
		if id == l.ItemID {
			return true
		}
	}
	return false
}

func (p *Promotion) inBundle(l CartLine) bool {
	for _, item := range p.BundleItems {
		if item.Kind == l.Kind && item.ItemID == l.ItemID {
			return true
		}
	}
	return false
}

// bogoDiscount упорядочивает единицы от дорогих к дешёвым;
// в каждой полной группе из buy+get последние get единиц получают скидку
func (p *Promotion) bogoDiscount(lines []CartLine) int64 {
	runs := make([]CartLine, 0, len(lines))
	total := 0
	for _, l := range lines {
		runs = append(runs, l)
		total += l.Quantity
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].UnitPriceCents > runs[j].UnitPriceCents })

	percent := int64(p.GetDiscountPercent)
	if percent == 0 {
		percent = defaultBOGODiscountPercent
	}

	group := p.BuyQuantity + p.GetQuantity
	limit := total / group * group

	var discounted int64
	pos := 0
	for _, r := range runs {
		start, end := min(pos, limit), min(pos+r.Quantity, limit)
		discounted += int64(p.discountedUnits(end)-p.discountedUnits(start)) * r.UnitPriceCents
		pos += r.Quantity
	}
	return PercentOf(discounted, percent)
}

// discountedUnits сколько из первых n единиц попадают на позиции get
func (p *Promotion) discountedUnits(n int) int {
	group := p.BuyQuantity + p.GetQuantity
	rest := n%group - p.BuyQuantity
	return n/group*p.GetQuantity + max(rest, 0)
}

// bundleDiscount скидка на полные комплекты; false, если комплект не собран
func (p *Promotion) bundleDiscount(lines []CartLine) (int64, bool) {
	bundles := -1
	var bundlePrice int64
	for _, item := range p.BundleItems {
		qty := 0
		var price int64
		for _, l := range lines {
			if l.Kind == item.Kind && l.ItemID == item.ItemID {
				if qty == 0 {
					price = l.UnitPriceCents
				}
				qty += l.Quantity
			}
		}
		if qty == 0 {
			return 0, false
		}
		if bundles < 0 || qty < bundles {
			bundles = qty
		}
		bundlePrice += price
	}
	return PercentOf(bundlePrice*int64(bundles), p.Value), true
}

// PercentOf процент от суммы в центах с округлением половины вверх
func PercentOf(amountCents, percent int64) int64 {
	return (amountCents*percent + 50) / 100
}
