package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
)

// ErrInternal возвращается, если не удалось получить список бронирований
var ErrInternal = errors.New("send reminders: internal error")

// UseCase напоминает клиентам о подтвержденных бронированиях
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	publisher    Publisher
	lead         time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, businessRepo BusinessRepository, publisher Publisher, lead time.Duration, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		publisher:    publisher,
		lead:         lead,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute публикует booking.reminder для бронирований, начинающихся в ближайшие lead часов.
// Напоминание отмечается отправленным только после успешной публикации
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	deadline := now.Add(uc.lead)

	// Даты хранятся без часового пояса: берем с запасом в сутки с обеих сторон
	from := scheduling.DateOnly(now.UTC()).AddDate(0, 0, -1)
	to := scheduling.DateOnly(deadline.UTC()).AddDate(0, 0, 1)

	candidates, err := uc.bookingRepo.ListReminderCandidates(ctx, from, to)
	if err != nil {
		uc.logger.Error("SendReminders: failed to list bookings: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	businesses := make(map[int64]*domain.Business)
	sent := 0
	for _, b := range candidates {
		business, ok := businesses[b.BusinessID]
		if !ok {
			business, err = uc.businessRepo.GetByID(ctx, b.BusinessID)
			if err != nil {
				uc.logger.Error("SendReminders: failed to get business id=%d: %v", b.BusinessID, err)
				continue
			}
			businesses[b.BusinessID] = business
		}

		startsAt := b.StartsAt(business.Location())
		if !startsAt.After(now) || startsAt.After(deadline) {
			continue
		}

		event := domain.BookingEvent(domain.EventBookingReminder, b, business.Name, now)
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Error("SendReminders: failed to publish reminder for booking id=%d: %v", b.ID, err)
			continue
		}
		if err := uc.bookingRepo.MarkReminderSent(ctx, b.ID, now); err != nil {
			uc.logger.Error("SendReminders: failed to mark reminder for booking id=%d: %v", b.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		uc.logger.Info("SendReminders: sent %d reminders", sent)
	}
	return sent, nil
}
