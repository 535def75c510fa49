package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// CreateReviewRequest отзыв клиента о визите
type CreateReviewRequest struct {
	UserID    int64   `json:"-"`
	BookingID int64   `json:"bookingId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

// ReplyRequest ответ бизнеса на отзыв
type ReplyRequest struct {
	UserID int64  `json:"-"`
	Reply  string `json:"reply"`
}

// ListReviewsRequest параметры списка отзывов
type ListReviewsRequest struct {
	BusinessID int64
	Limit      int
	Offset     int
}

type ReviewResponse struct {
	ID         int64      `json:"id"`
	BookingID  int64      `json:"bookingId"`
	BusinessID int64      `json:"businessId"`
	StaffID    int64      `json:"staffId"`
	CustomerID int64      `json:"customerId"`
	Rating     int        `json:"rating"`
	Comment    *string    `json:"comment,omitempty"`
	Reply      *string    `json:"reply,omitempty"`
	RepliedAt  *time.Time `json:"repliedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// SummaryResponse сводка: средняя оценка, количество и распределение по звёздам
type SummaryResponse struct {
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
	Distribution map[string]int `json:"distribution"`
}

type ReviewListResponse struct {
	Summary SummaryResponse  `json:"summary"`
	Reviews []ReviewResponse `json:"reviews"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		BusinessID: r.BusinessID,
		StaffID:    r.StaffID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Reply:      r.Reply,
		RepliedAt:  r.RepliedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainSummary все оценки 1..5 присутствуют в распределении
func FromDomainSummary(s *domain.ReviewSummary) SummaryResponse {
	resp := SummaryResponse{Distribution: make(map[string]int, domain.MaxRating)}
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		resp.Distribution[strconv.Itoa(rating)] = 0
	}
	if s == nil {
		return resp
	}
	resp.Average = s.Average
	resp.Count = s.Count
	for rating, count := range s.Distribution {
		resp.Distribution[strconv.Itoa(rating)] = count
	}
	return resp
}

func FromDomainReviewList(list []*domain.Review, summary *domain.ReviewSummary, limit, offset int) *ReviewListResponse {
	resp := &ReviewListResponse{
		Summary: FromDomainSummary(summary),
		Reviews: make([]ReviewResponse, 0, len(list)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, r := range list {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}

// TrimOptional пустой комментарий хранится как NULL
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
