// Package access проверяет права пользователя на управление бизнесом
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
)

var (
	// ErrBusinessNotFound бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrAccessDenied пользователь не управляет бизнесом
	ErrAccessDenied = errors.New("access denied")

	// ErrLookup ошибка получения бизнеса
	ErrLookup = errors.New("access: failed to load business")
)

// BusinessGetter источник бизнесов
type BusinessGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// LoadBusiness получает бизнес и переводит ошибки репозитория в ошибки доступа
func LoadBusiness(ctx context.Context, businesses BusinessGetter, businessID int64) (*domain.Business, error) {
	business, err := businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	return business, nil
}

// RequireManager возвращает бизнес, если userID им управляет
func RequireManager(ctx context.Context, businesses BusinessGetter, businessID, userID int64) (*domain.Business, error) {
	business, err := LoadBusiness(ctx, businesses, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsManagedBy(userID) {
		return nil, ErrAccessDenied
	}
	return business, nil
}
