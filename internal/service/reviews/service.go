package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/review"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews/models"
)

// Service сервис отзывов
type Service struct {
	reviewRepo   ReviewRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create сохраняет отзыв клиента о завершённом визите и пересчитывает рейтинг бизнеса
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: user=%d reviewing booking id=%d", req.UserID, req.BookingID)

	comment := models.TrimOptional(req.Comment)
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if comment != nil && utf8.RuneCountInString(*comment) > domain.MaxReviewCommentLength {
		return nil, fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Create: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Create - get booking: %v", ErrInternal, err)
	}
	if booking.CustomerID != req.UserID {
		s.logger.Warn("Create: booking id=%d belongs to another customer", req.BookingID)
		return nil, ErrBookingNotFound
	}
	if booking.Status != domain.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	review := &domain.Review{
		BookingID:  booking.ID,
		BusinessID: booking.BusinessID,
		StaffID:    booking.StaffID,
		CustomerID: req.UserID,
		Rating:     req.Rating,
		Comment:    comment,
	}

	var created *domain.Review
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.reviewRepo.Create(ctx, review)
		if err != nil {
			return err
		}
		return s.businessRepo.RefreshRating(ctx, booking.BusinessID)
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewExists) {
			return nil, ErrReviewExists
		}
		s.logger.Error("Create: failed to save review for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%d", created.ID)
	return models.FromDomainReview(created), nil
}

// List получает отзывы бизнеса со сводкой
func (s *Service) List(ctx context.Context, req *models.ListReviewsRequest) (*models.ReviewListResponse, error) {
	if _, err := access.LoadBusiness(ctx, s.businessRepo, req.BusinessID); err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: List - %v", ErrInternal, err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	offset := max(req.Offset, 0)

	list, err := s.reviewRepo.ListByBusiness(ctx, req.BusinessID, limit, offset)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	summary, err := s.reviewRepo.Summary(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("List: failed to get summary for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - summary: %v", ErrInternal, err)
	}

	return models.FromDomainReviewList(list, summary, limit, offset), nil
}

// Reply сохраняет ответ бизнеса на отзыв (один раз)
func (s *Service) Reply(ctx context.Context, reviewID int64, req *models.ReplyRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Reply: user=%d replying to review id=%d", req.UserID, reviewID)

	reply := strings.TrimSpace(req.Reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: reply is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reply) > domain.MaxReviewReplyLength {
		return nil, fmt.Errorf("%w: reply is longer than %d characters", ErrInvalidInput, domain.MaxReviewReplyLength)
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Reply: failed to get review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Reply - get review: %v", ErrInternal, err)
	}

	if _, err := access.RequireManager(ctx, s.businessRepo, review.BusinessID, req.UserID); err != nil {
		switch {
		case errors.Is(err, access.ErrAccessDenied):
			s.logger.Warn("Reply: user=%d does not manage business=%d", req.UserID, review.BusinessID)
			return nil, ErrAccessDenied
		case errors.Is(err, access.ErrBusinessNotFound):
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: Reply - %v", ErrInternal, err)
	}

	if review.HasReply() {
		return nil, ErrAlreadyReplied
	}

	if err := s.reviewRepo.Reply(ctx, reviewID, reply); err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyReplied) {
			return nil, ErrAlreadyReplied
		}
		s.logger.Error("Reply: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Reply - repository error: %v", ErrInternal, err)
	}

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		s.logger.Error("Reply: failed to reload review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Reply - reload review: %v", ErrInternal, err)
	}

	return models.FromDomainReview(updated), nil
}
