package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
)

type stubBusinesses struct {
	business *domain.Business
	err      error
}

func (s stubBusinesses) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	return s.business, s.err
}

func TestRequireManager(t *testing.T) {
	owned := stubBusinesses{business: &domain.Business{ID: 7, OwnerID: 1}}

	business, err := RequireManager(context.Background(), owned, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), business.ID)

	_, err = RequireManager(context.Background(), owned, 7, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = RequireManager(context.Background(), stubBusinesses{err: businessRepo.ErrBusinessNotFound}, 7, 1)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = RequireManager(context.Background(), stubBusinesses{err: errors.New("db down")}, 7, 1)
	assert.ErrorIs(t, err, ErrLookup)
}
