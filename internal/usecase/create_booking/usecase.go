package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/service/access"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/checkout"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/promo"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/scheduling"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	businessRepo  BusinessRepository
	serviceRepo   ServiceRepository
	settingsRepo  SettingsRepository
	promotionRepo PromotionRepository
	planner       *scheduling.Planner
	checkout      Checkout
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
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	staffRepo StaffRepository,
	promotionRepo PromotionRepository,
	checkout Checkout,
	publisher Publisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		businessRepo:  businessRepo,
		serviceRepo:   serviceRepo,
		settingsRepo:  settingsRepo,
		promotionRepo: promotionRepo,
		planner:       scheduling.NewPlanner(staffRepo, bookingRepo),
		checkout:      checkout,
		publisher:     publisher,
		txManager:     txManager,
		metrics:       m,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений, применение промокода и создание оплаты идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, business=%d, service=%d, staff=%v, date=%s, time=%s",
		req.CustomerID, req.BusinessID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	date := scheduling.DateOnly(req.Date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес
	business, err := access.LoadBusiness(ctx, uc.businessRepo, req.BusinessID)
	if err != nil {
		if errors.Is(err, access.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("CreateBooking: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}
	loc := business.Location()

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service, req.BusinessID); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d is not bookable at business id=%d", req.ServiceID, req.BusinessID)
		return nil, err
	}
	totalMinutes := service.TotalMinutes()

	var (
		result *domain.Booking
		intent *domain.PaymentIntent
		promoT domain.PromotionType
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, intent, promoT = nil, nil, ""

		// 5.1. Настройки с учетом иерархии
		settings, err := uc.settingsRepo.GetWithHierarchy(txCtx, req.BusinessID, &req.ServiceID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 5.2. Валидация даты и минимального времени до начала
		if err := scheduling.ValidateDate(date, scheduling.Today(now, loc), settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}
		if err := scheduling.ValidateNotice(date, req.StartTime, now, loc, settings.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 5.3. Мастера, работающие в эту дату
		staffDays, err := uc.planner.WorkingStaff(txCtx, req.BusinessID, req.ServiceID, req.StaffID, date)
		if err != nil {
			if errors.Is(err, scheduling.ErrStaffNotQualified) {
				uc.logger.Warn("CreateBooking: staff id=%d does not perform service id=%d", *req.StaffID, req.ServiceID)
				return ErrStaffNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to load staff: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 5.4. Активные бронирования мастеров на дату с блокировкой (FOR UPDATE)
		busy, err := uc.planner.BusyByStaff(txCtx, req.BusinessID, scheduling.StaffIDs(staffDays), date, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 5.5. Первый свободный мастер
		staff, err := pickStaff(staffDays, busy, req.StartTime, totalMinutes, settings.SlotStepMinutes)
		if err != nil {
			uc.logger.Warn("CreateBooking: no staff for %s %s: %v", date.Format(domain.DateFormat), req.StartTime, err)
			return err
		}
		uc.logger.Info("CreateBooking: staff id=%d is free at %s", staff.ID, req.StartTime)

		// 5.6. Промокод (строка промоакции блокируется до коммита)
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			StaffID:         staff.ID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			DurationMinutes: totalMinutes,
			ServiceName:     service.Name,
			StaffName:       staff.Name,
			PriceCents:      service.PriceCents,
			TotalCents:      service.PriceCents,
			Currency:        service.Currency,
			Notes:           req.Notes,
		}

		var applied *promo.Applied
		if req.PromoCode != nil {
			cart := domain.Cart{Lines: []domain.CartLine{{
				Kind: domain.ItemService, ItemID: service.ID, UnitPriceCents: service.PriceCents, Quantity: 1,
			}}}
			applied, err = promo.Apply(txCtx, uc.promotionRepo, req.BusinessID, req.CustomerID, *req.PromoCode, cart, now)
			if err != nil {
				if promo.IsRejection(err) {
					uc.logger.Warn("CreateBooking: promo code %q rejected: %v", *req.PromoCode, err)
					return fmt.Errorf("%w: %w", ErrPromotionRejected, err)
				}
				uc.logger.Error("CreateBooking: failed to apply promo code: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			booking.PromotionID = &applied.Promotion.ID
			booking.DiscountCents = applied.Result.DiscountCents
			booking.TotalCents = applied.Result.TotalCents
		}

		// 5.7. Предоплата нужна, если бизнес её требует и может принимать онлайн-платежи
		prepay := settings.RequirePrepayment && business.CanAcceptOnlinePayments() && booking.TotalCents > 0
		if prepay {
			booking.Status = domain.StatusPending
			booking.PaymentStatus = domain.PaymentPending
		} else {
			booking.Status = domain.StatusConfirmed
			booking.PaymentStatus = domain.PaymentNotRequired
		}

		// 5.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.9. Фиксируем использование промоакции
		if applied != nil {
			if err := promo.Redeem(txCtx, uc.promotionRepo, applied, req.CustomerID, &created.ID, nil); err != nil {
				uc.logger.Error("CreateBooking: failed to redeem promotion id=%d: %v", applied.Promotion.ID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			promoT = applied.Promotion.Type
		}

		// 5.10. Онлайн-оплата с разделением комиссий
		if prepay {
			intent, _, err = uc.checkout.Start(txCtx, checkout.Target{
				Business:   business,
				CustomerID: req.CustomerID,
				BookingID:  &created.ID,
				TotalCents: created.TotalCents,
				Currency:   created.Currency,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to start payment for booking id=%d: %v", created.ID, err)
				return fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, staff=%d, status=%s, total=%d",
		result.ID, result.StaffID, result.Status, result.TotalCents)

	uc.observe(result, promoT)

	event := domain.BookingEvent(domain.EventBookingCreated, result, business.Name, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, result.ID, err)
	}

	resp := &Response{Booking: result}
	if intent != nil {
		resp.PaymentIntentID = &intent.ID
		resp.PaymentClientSecret = &intent.ClientSecret
	}
	return resp, nil
}

func (uc *UseCase) observe(b *domain.Booking, promoType domain.PromotionType) {
	if uc.metrics == nil {
		return
	}
	payment := "on_site"
	if b.PaymentStatus == domain.PaymentPending {
		payment = "online"
	}
	uc.metrics.BookingsCreated.WithLabelValues(payment).Inc()
	if promoType != "" {
		uc.metrics.PromotionsRedeemed.WithLabelValues(string(promoType)).Inc()
	}
}
