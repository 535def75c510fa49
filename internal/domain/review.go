package domain

import "time"

// Review отзыв клиента о завершённой записи
type Review struct {
	ID         int64
	BookingID  int64
	BusinessID int64
	StaffID    int64
	CustomerID int64
	Rating     int
	Comment    *string
	Reply      *string
	RepliedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasReply бизнес уже ответил на отзыв
func (r *Review) HasReply() bool {
	return r.Reply != nil
}

// ReviewSummary сводка по отзывам бизнеса
type ReviewSummary struct {
	Average      float64
	Count        int
	Distribution map[int]int // Оценка -> количество
}
