package expire_unpaid_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

const batchSize = 100

// ErrInternal возвращается, если не удалось получить список бронирований
var ErrInternal = errors.New("expire unpaid bookings: internal error")

// UseCase освобождает время мастеров, если предоплата не пришла вовремя
type UseCase struct {
	bookingRepo   BookingRepository
	promotionRepo PromotionRepository
	paymentRepo   PaymentRepository
	voider        PaymentVoider
	txManager     TransactionManager
	ttl           time.Duration
	metrics       *metrics.Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	promotionRepo PromotionRepository,
	paymentRepo PaymentRepository,
	voider PaymentVoider,
	txManager TransactionManager,
	ttl time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		promotionRepo: promotionRepo,
		paymentRepo:   paymentRepo,
		voider:        voider,
		txManager:     txManager,
		ttl:           ttl,
		metrics:       m,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute переводит в expired бронирования, ожидающие оплату дольше ttl.
// Ошибка одного бронирования не останавливает остальные
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	before := uc.timeProvider.Now().Add(-uc.ttl)

	candidates, err := uc.bookingRepo.ListExpiredUnpaid(ctx, before, batchSize)
	if err != nil {
		uc.logger.Error("ExpireUnpaidBookings: failed to list bookings: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	expired := 0
	for _, candidate := range candidates {
		ok, err := uc.expire(ctx, candidate.ID)
		if err != nil {
			uc.logger.Error("ExpireUnpaidBookings: booking id=%d: %v", candidate.ID, err)
			continue
		}
		if ok {
			expired++
		}
	}

	uc.logger.Info("ExpireUnpaidBookings: expired %d of %d bookings created before %s",
		expired, len(candidates), before.Format(time.RFC3339))
	return expired, nil
}

// expire перечитывает бронирование в транзакции: оплата могла прийти после выборки.
// После фиксации отменяет PaymentIntent, чтобы по нему уже нельзя было заплатить
func (uc *UseCase) expire(ctx context.Context, id int64) (bool, error) {
	var (
		done   bool
		unpaid *domain.Payment
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		done, unpaid = false, nil

		booking, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if booking.Status != domain.StatusPending || booking.PaymentStatus != domain.PaymentPending {
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, id, domain.StatusExpired); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if _, err := uc.promotionRepo.ReleaseForBooking(txCtx, id); err != nil {
			return fmt.Errorf("release promotion: %w", err)
		}

		payment, err := uc.paymentRepo.GetByBookingID(txCtx, id)
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
			uc.logger.Warn("ExpireUnpaidBookings: booking id=%d has no payment", id)
		case err != nil:
			return fmt.Errorf("get payment: %w", err)
		default:
			unpaid = payment
		}

		done = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if unpaid != nil {
		if err := uc.voider.Void(ctx, unpaid); err != nil {
			uc.logger.Warn("ExpireUnpaidBookings: failed to cancel payment intent for booking id=%d: %v", id, err)
		}
	}

	if done && uc.metrics != nil {
		uc.metrics.BookingsCancelled.WithLabelValues(string(domain.StatusExpired)).Inc()
	}
	return done, nil
}
