package domain

import (
	"strings"
	"time"
	"unicode"
)

// BusinessCategory категория бизнеса
type BusinessCategory string

const (
	CategoryHair    BusinessCategory = "hair"
	CategoryNails   BusinessCategory = "nails"
	CategorySpa     BusinessCategory = "spa"
	CategoryBarber  BusinessCategory = "barber"
	CategoryMakeup  BusinessCategory = "makeup"
	CategoryMassage BusinessCategory = "massage"
	CategoryOther   BusinessCategory = "other"
)

// BusinessCategories список допустимых категорий
var BusinessCategories = []BusinessCategory{
	CategoryHair,
	CategoryNails,
	CategorySpa,
	CategoryBarber,
	CategoryMakeup,
	CategoryMassage,
	CategoryOther,
}

// IsValid проверяет, что категория из списка допустимых
func (c BusinessCategory) IsValid() bool {
	for _, valid := range BusinessCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Business бизнес (арендатор маркетплейса): салон, барбершоп, спа и т.п.
type Business struct {
	ID          int64
	OwnerID     int64
	Name        string
	Slug        string
	Description *string
	Category    BusinessCategory
	Address     string
	City        string
	Phone       *string
	Email       *string
	Timezone    string

	CoverImageKey *string

	// Stripe Connect
	StripeAccountID *string
	ChargesEnabled  bool
	PayoutsEnabled  bool

	// Денормализованный рейтинг (обновляется при добавлении отзыва)
	RatingAverage float64
	RatingCount   int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManagedBy проверяет, что пользователь управляет бизнесом
func (b *Business) IsManagedBy(userID int64) bool {
	return b.OwnerID == userID
}

// CanAcceptOnlinePayments проверяет, что бизнес подключил Stripe и может принимать платежи
func (b *Business) CanAcceptOnlinePayments() bool {
	return b.StripeAccountID != nil && *b.StripeAccountID != "" && b.ChargesEnabled
}

// Location возвращает часовой пояс бизнеса (UTC, если не удалось загрузить)
func (b *Business) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BusinessSearchFilter фильтр поиска бизнесов
type BusinessSearchFilter struct {
	City     *string
	Category *BusinessCategory
	Query    *string
	Limit    int
	Offset   int
}

// Slugify строит slug из названия: латиница и цифры в нижнем регистре, разделитель "-"
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
