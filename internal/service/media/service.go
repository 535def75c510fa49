package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/media/models"
)

// Service сервис изображений бизнеса
type Service struct {
	businessRepo BusinessRepository
	storage      Storage
	newName      KeyGenerator
	logger       Logger
}

// NewService создает сервис; storage == nil отключает загрузку
func NewService(businessRepo BusinessRepository, storage Storage, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		storage:      storage,
		newName:      func() string { return uuid.NewString() },
		logger:       logger,
	}
}

// CreateUploadURL выдает подписанную ссылку на загрузку изображения в хранилище
func (s *Service) CreateUploadURL(ctx context.Context, req *models.CreateUploadURLRequest) (*models.UploadURLResponse, error) {
	s.logger.Info("CreateUploadURL: business=%d kind=%s type=%s by user=%d", req.BusinessID, req.Kind, req.ContentType, req.UserID)

	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	kind := domain.MediaKind(strings.ToLower(req.Kind))
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind must be cover, gallery or staff", ErrInvalidInput)
	}
	ext, ok := domain.ImageExtension(req.ContentType)
	if !ok {
		return nil, ErrUnsupportedContentType
	}

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("CreateUploadURL", err)
	}

	key := domain.BusinessMediaKey(req.BusinessID, kind, s.newName(), ext)
	upload, err := s.storage.PresignUpload(ctx, key, strings.ToLower(req.ContentType))
	if err != nil {
		s.logger.Error("CreateUploadURL: failed to presign key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: CreateUploadURL - presign: %v", ErrInternal, err)
	}

	return &models.UploadURLResponse{
		UploadURL: upload.URL,
		Method:    upload.Method,
		Headers:   upload.Headers,
		Key:       key,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: upload.ExpiresAt,
	}, nil
}

// SetCover сохраняет ключ загруженной обложки
func (s *Service) SetCover(ctx context.Context, req *models.SetCoverRequest) (*models.CoverResponse, error) {
	s.logger.Info("SetCover: business=%d key=%s by user=%d", req.BusinessID, req.Key, req.UserID)

	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if !domain.BelongsToBusiness(req.Key, req.BusinessID) {
		s.logger.Warn("SetCover: key=%s is outside of business=%d prefix", req.Key, req.BusinessID)
		return nil, ErrInvalidKey
	}

	if _, err := access.RequireManager(ctx, s.businessRepo, req.BusinessID, req.UserID); err != nil {
		return nil, s.accessError("SetCover", err)
	}

	if err := s.businessRepo.SetCoverImage(ctx, req.BusinessID, req.Key); err != nil {
		s.logger.Error("SetCover: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: SetCover - repository error: %v", ErrInternal, err)
	}

	return &models.CoverResponse{
		BusinessID: req.BusinessID,
		Key:        req.Key,
		URL:        s.storage.PublicURL(req.Key),
	}, nil
}

func (s *Service) accessError(method string, err error) error {
	switch {
	case errors.Is(err, access.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, access.ErrAccessDenied):
		s.logger.Warn("%s: access denied", method)
		return ErrAccessDenied
	default:
		s.logger.Error("%s: failed to check access: %v", method, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
	}
}
