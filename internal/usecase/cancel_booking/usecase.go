package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	businessRepo  BusinessRepository
	settingsRepo  SettingsRepository
	paymentRepo   PaymentRepository
	promotionRepo PromotionRepository
	refunds       RefundProvider
	voider        PaymentVoider
	publisher     Publisher
	txManager     TransactionManager
	metrics       *metrics.Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	settingsRepo SettingsRepository,
	paymentRepo PaymentRepository,
	promotionRepo PromotionRepository,
	refunds RefundProvider,
	voider PaymentVoider,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		businessRepo:  businessRepo,
		settingsRepo:  settingsRepo,
		paymentRepo:   paymentRepo,
		promotionRepo: promotionRepo,
		refunds:       refunds,
		voider:        voider,
		publisher:     publisher,
		txManager:     txManager,
		metrics:       m,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute отменяет бронирование.
// Клиент отменяет как cancelled_by_user, менеджер бизнеса как cancelled_by_company.
// Оплаченное бронирование возвращается полностью при отмене бизнесом
// или при отмене клиентом не позже чем за cancellation notice часов до начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	now := uc.timeProvider.Now()

	var (
		result       *domain.Booking
		businessName string
		refunded     int64
		unpaid       *domain.Payment
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, refunded, unpaid = nil, 0, nil

		// 1. Бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		business, err := access.LoadBusiness(txCtx, uc.businessRepo, booking.BusinessID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get business id=%d: %v", booking.BusinessID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		businessName = business.Name

		// 2. Кто отменяет
		var status domain.BookingStatus
		switch {
		case booking.CustomerID == req.UserID:
			status = domain.StatusCancelledByUser
		case business.IsManagedBy(req.UserID):
			status = domain.StatusCancelledByCompany
		default:
			uc.logger.Warn("CancelBooking: user=%d has no access to booking id=%d", req.UserID, booking.ID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return ErrInvalidStatus
		}

		// 3. Отмена и освобождение промоакции
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, status, req.Reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
		}
		released, err := uc.promotionRepo.ReleaseForBooking(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to release promotion for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to release promotion: %v", ErrInternal, err)
		}
		if len(released) > 0 {
			uc.logger.Info("CancelBooking: released promotions %v for booking id=%d", released, booking.ID)
		}

		booking.Status = status
		booking.CancellationReason = req.Reason
		booking.CancelledAt = &now

		// 4. Возврат (ошибка провайдера откатывает отмену)
		if booking.PaymentStatus == domain.PaymentPending {
			unpaid, err = uc.paymentRepo.GetByBookingID(txCtx, booking.ID)
			if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Error("CancelBooking: failed to get payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}
		}
		if booking.IsPaid() {
			refundable, err := uc.refundable(txCtx, booking, status, business.Location(), now)
			if err != nil {
				return err
			}
			if refundable {
				refunded, err = uc.refund(txCtx, booking)
				if err != nil {
					return err
				}
				booking.PaymentStatus = domain.PaymentRefunded
			} else {
				uc.logger.Info("CancelBooking: booking id=%d cancelled too late for a refund", booking.ID)
			}
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled with status %s, refund=%d", result.ID, result.Status, refunded)

	// Оплата, пришедшая после отмены, возвращается обработчиком вебхука
	if unpaid != nil {
		if err := uc.voider.Void(ctx, unpaid); err != nil {
			uc.logger.Warn("CancelBooking: failed to cancel payment intent for booking id=%d: %v", result.ID, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.BookingsCancelled.WithLabelValues(string(result.Status)).Inc()
	}

	event := domain.BookingEvent(domain.EventBookingCancelled, result, businessName, now)
	if req.Reason != nil {
		event.Reason = *req.Reason
	}
	event.RefundCents = refunded
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CancelBooking: failed to publish %s for booking id=%d: %v", event.Type, result.ID, err)
	}

	return &Response{Booking: result, RefundCents: refunded}, nil
}

// refundable бизнес возвращает всегда, клиент - только при отмене заранее
func (uc *UseCase) refundable(ctx context.Context, b *domain.Booking, status domain.BookingStatus, loc *time.Location, now time.Time) (bool, error) {
	if status == domain.StatusCancelledByCompany {
		return true, nil
	}

	settings, err := uc.settingsRepo.GetWithHierarchy(ctx, b.BusinessID, &b.ServiceID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get settings: %v", err)
		return false, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	deadline := b.StartsAt(loc).Add(-time.Duration(settings.CancellationNoticeHours) * time.Hour)
	return !now.After(deadline), nil
}

func (uc *UseCase) refund(ctx context.Context, b *domain.Booking) (int64, error) {
	payment, err := uc.paymentRepo.GetByBookingID(ctx, b.ID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get payment for booking id=%d: %v", b.ID, err)
		return 0, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	refund, err := uc.refunds.Refund(ctx, stripeconnect.RefundRequest{
		IntentID:       payment.ProviderIntentID,
		IdempotencyKey: fmt.Sprintf("refund-booking-%d", b.ID),
	})
	if err != nil {
		uc.logger.Error("CancelBooking: refund failed for booking id=%d: %v", b.ID, err)
		return 0, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	amount := refund.AmountCents
	if amount == 0 {
		amount = payment.AmountCents
	}
	if err := uc.paymentRepo.SetRefunded(ctx, payment.ID, amount, domain.PaymentRecordRefunded); err != nil {
		return 0, fmt.Errorf("%w: failed to mark payment refunded: %v", ErrInternal, err)
	}
	if err := uc.bookingRepo.SetPaymentStatus(ctx, b.ID, domain.PaymentRefunded); err != nil {
		return 0, fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
	}
	return amount, nil
}
