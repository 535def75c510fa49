package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addTimeOffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/add_time_off"
	businessAnalyticsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/business_analytics"
	cancelBookingHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_booking"
	createBusinessHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_business"
	createOrderHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_order"
	createProductHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_product"
	createPromotionHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_promotion"
	createReviewHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_review"
	createServiceHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_service"
	createStaffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_staff"
	createUploadURLHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/create_upload_url"
	deactivatePromotionHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/deactivate_promotion"
	deleteServiceHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/delete_service"
	deleteSettingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/delete_settings"
	deleteTimeOffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/delete_time_off"
	fulfillOrderHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/fulfill_order"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_booking"
	getBusinessHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_business"
	getBusinessBookingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_business_bookings"
	getOrderHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_order"
	getPromotionHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_promotion"
	getSettingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_settings"
	getStaffScheduleHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_staff_schedule"
	getUserBookingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_user_bookings"
	getUserOrdersHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/get_user_orders"
	listProductsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_products"
	listPromotionsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_promotions"
	listReviewsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_reviews"
	listServicesHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_services"
	listSettingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_settings"
	listStaffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_staff"
	listTimeOffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/list_time_off"
	replyReviewHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/reply_review"
	rescheduleBookingHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/reschedule_booking"
	searchBusinessesHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/search_businesses"
	setCoverHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/set_cover"
	setStaffScheduleHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/set_staff_schedule"
	startPayoutOnboardingHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/start_payout_onboarding"
	stripeWebhookHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/stripe_webhook"
	updateBookingStatusHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_booking_status"
	updateBusinessHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_business"
	updateProductHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_product"
	updatePromotionHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_promotion"
	updateServiceHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_service"
	updateStaffHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/update_staff"
	upsertSettingsHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/upsert_settings"
	validatePromotionHandler "github.com/m04kA/SMC-BeautyMarketplace/internal/api/handlers/validate_promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/config"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/infra/queue"
	analyticsRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/analytics"
	bookingRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/migrations"
	orderRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/order"
	paymentRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/payment"
	productRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/product"
	promotionRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/promotion"
	reviewRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/review"
	settingsRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/SMC-BeautyMarketplace/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/objectstorage"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/integrations/stripeconnect"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/notifications"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/bookings"
	businessesService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/businesses"
	catalogService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/catalog"
	mediaService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/media"
	ordersService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/orders"
	productsService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/products"
	promotionsService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/promotions"
	reviewsService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/reviews"
	settingsService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/settings"
	staffService "github.com/m04kA/SMC-BeautyMarketplace/internal/service/staff"
	businessAnalyticsUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/business_analytics"
	cancelBookingUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/checkout"
	createBookingUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_booking"
	createOrderUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/create_order"
	expireUnpaidUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/expire_unpaid_bookings"
	getAvailableSlotsUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/get_available_slots"
	stripeWebhookUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/handle_stripe_webhook"
	rescheduleBookingUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/reschedule_booking"
	sendRemindersUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/send_reminders"
	payoutOnboardingUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/start_payout_onboarding"
	validatePromotionUC "github.com/m04kA/SMC-BeautyMarketplace/internal/usecase/validate_promotion"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/metrics"
	"github.com/m04kA/SMC-BeautyMarketplace/pkg/txmanager"
)

const jobTimeout = 2 * time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting beauty marketplace API...")

	// Метрики собираются только если включены; nil отключает их во всех слоях
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	serviceRepository := catalogRepo.NewRepository(wrappedDB)
	productRepository := productRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	analyticsRepository := analyticsRepo.NewRepository(wrappedDB)

	// Интеграции
	stripeClient := stripeconnect.NewClient(stripeconnect.Config{
		SecretKey:      cfg.Stripe.SecretKey,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
		AccountCountry: cfg.Stripe.AccountCountry,
		RefreshURL:     cfg.Stripe.RefreshURL,
		ReturnURL:      cfg.Stripe.ReturnURL,
	}, log)
	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe is not configured: online payments are disabled")
	}

	publisher, closePublisher, err := newPublisher(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize notification publisher: %v", err)
	}

	var (
		mediaStorage mediaService.Storage
		mediaURLs    businessesService.MediaURLBuilder
	)
	if storageClient, err := newObjectStorage(cfg.Storage, log); err != nil {
		log.Warn("Object storage disabled: %v", err)
	} else {
		mediaStorage = storageClient
		mediaURLs = storageClient
	}

	checkoutFlow := checkout.New(stripeClient, paymentRepository, domain.FeePolicy{
		PlatformFeeBps:      cfg.Payments.PlatformFeeBps,
		ProcessorFeeBps:     cfg.Payments.ProcessorFeeBps,
		ProcessorFixedCents: cfg.Payments.ProcessorFixedCents,
	})

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, businessRepository, publisher, bookingsService.RealTimeProvider{}, log)
	businessSvc := businessesService.NewService(businessRepository, mediaURLs, log)
	catalogSvc := catalogService.NewService(serviceRepository, businessRepository, cfg.Payments.Currency, log)
	productSvc := productsService.NewService(productRepository, businessRepository, cfg.Payments.Currency, log)
	staffSvc := staffService.NewService(staffRepository, serviceRepository, businessRepository, txMgr, staffService.RealTimeProvider{}, log)
	settingsSvc := settingsService.NewService(settingsRepository, serviceRepository, businessRepository, log)
	promotionSvc := promotionsService.NewService(promotionRepository, businessRepository, promotionsService.RealTimeProvider{}, log)
	orderSvc := ordersService.NewService(orderRepository, businessRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, businessRepository, txMgr, log)
	mediaSvc := mediaService.NewService(businessRepository, mediaStorage, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		serviceRepository,
		settingsRepository,
		staffRepository,
		promotionRepository,
		checkoutFlow,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		serviceRepository,
		settingsRepository,
		staffRepository,
		bookingRepository,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		settingsRepository,
		paymentRepository,
		promotionRepository,
		stripeClient,
		checkoutFlow,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		settingsRepository,
		staffRepository,
		txMgr,
		log,
	)
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		productRepository,
		businessRepository,
		promotionRepository,
		checkoutFlow,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)
	validatePromotionUseCase := validatePromotionUC.NewUseCase(promotionRepository, serviceRepository, productRepository, log)
	stripeWebhookUseCase := stripeWebhookUC.NewUseCase(
		stripeClient,
		paymentRepository,
		bookingRepository,
		orderRepository,
		businessRepository,
		stripeClient,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)
	payoutOnboardingUseCase := payoutOnboardingUC.NewUseCase(businessRepository, stripeClient, log)
	businessAnalyticsUseCase := businessAnalyticsUC.NewUseCase(analyticsRepository, businessRepository, txMgr, log)

	// Фоновые задачи
	jobs := scheduler.New(log)
	if cfg.Scheduler.Enabled {
		expireUnpaid := expireUnpaidUC.NewUseCase(
			bookingRepository,
			promotionRepository,
			paymentRepository,
			checkoutFlow,
			txMgr,
			cfg.Payments.UnpaidTTL(),
			metricsCollector,
			log,
		)
		sendReminders := sendRemindersUC.NewUseCase(
			bookingRepository,
			businessRepository,
			publisher,
			time.Duration(cfg.Scheduler.ReminderLeadHours)*time.Hour,
			log,
		)

		if err := jobs.Add("expire_unpaid_bookings", cfg.Scheduler.ExpireUnpaidSpec, jobTimeout, expireUnpaid.Execute); err != nil {
			log.Fatal("Failed to schedule job: %v", err)
		}
		if err := jobs.Add("send_reminders", cfg.Scheduler.RemindersSpec, jobTimeout, sendReminders.Execute); err != nil {
			log.Fatal("Failed to schedule job: %v", err)
		}
		jobs.Start()
	}

	// Handlers
	searchBusinesses := searchBusinessesHandler.NewHandler(businessSvc, log)
	getBusiness := getBusinessHandler.NewHandler(businessSvc, log)
	createBusiness := createBusinessHandler.NewHandler(businessSvc, log)
	updateBusiness := updateBusinessHandler.NewHandler(businessSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	listProducts := listProductsHandler.NewHandler(productSvc, log)
	createProduct := createProductHandler.NewHandler(productSvc, log)
	updateProduct := updateProductHandler.NewHandler(productSvc, log)

	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(staffSvc, log)
	setStaffSchedule := setStaffScheduleHandler.NewHandler(staffSvc, log)
	listTimeOff := listTimeOffHandler.NewHandler(staffSvc, log)
	addTimeOff := addTimeOffHandler.NewHandler(staffSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(staffSvc, log)

	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	listSettings := listSettingsHandler.NewHandler(settingsSvc, log)
	upsertSettings := upsertSettingsHandler.NewHandler(settingsSvc, log)
	deleteSettings := deleteSettingsHandler.NewHandler(settingsSvc, log)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)

	listPromotions := listPromotionsHandler.NewHandler(promotionSvc, log)
	getPromotion := getPromotionHandler.NewHandler(promotionSvc, log)
	createPromotion := createPromotionHandler.NewHandler(promotionSvc, log)
	updatePromotion := updatePromotionHandler.NewHandler(promotionSvc, log)
	deactivatePromotion := deactivatePromotionHandler.NewHandler(promotionSvc, log)
	validatePromotion := validatePromotionHandler.NewHandler(validatePromotionUseCase, log)

	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	fulfillOrder := fulfillOrderHandler.NewHandler(orderSvc, log)

	listReviews := listReviewsHandler.NewHandler(reviewSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	replyReview := replyReviewHandler.NewHandler(reviewSvc, log)

	createUploadURL := createUploadURLHandler.NewHandler(mediaSvc, log)
	setCover := setCoverHandler.NewHandler(mediaSvc, log)

	stripeWebhook := stripeWebhookHandler.NewHandler(stripeWebhookUseCase, log)
	startPayoutOnboarding := startPayoutOnboardingHandler.NewHandler(payoutOnboardingUseCase, log)
	businessAnalytics := businessAnalyticsHandler.NewHandler(businessAnalyticsUseCase, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (X-User-ID необязателен, владелец видит больше)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalUserID)

	// Вебхук Stripe: подлинность проверяется подписью
	public.HandleFunc("/payments/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	public.HandleFunc("/businesses", searchBusinesses.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}", getBusiness.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/products", listProducts.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/staff", listStaff.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/staff/{staffId}/schedule", getStaffSchedule.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/settings", getSettings.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{businessId}/reviews", listReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бизнесы и каталог ---
	protected.HandleFunc("/businesses", createBusiness.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}", updateBusiness.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId}/products", createProduct.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/products/{productId}", updateProduct.Handle).Methods(http.MethodPatch)

	// --- Мастера ---
	protected.HandleFunc("/businesses/{businessId}/staff", createStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}/schedule", setStaffSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}/time-off", listTimeOff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}/time-off", addTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

	// --- Настройки бронирования ---
	protected.HandleFunc("/businesses/{businessId}/settings", upsertSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/settings", deleteSettings.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId}/settings/levels", listSettings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/review", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Промоакции ---
	protected.HandleFunc("/businesses/{businessId}/promotions", listPromotions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/promotions", createPromotion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/promotions/validate", validatePromotion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/promotions/{promotionId}", getPromotion.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/promotions/{promotionId}", updatePromotion.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/promotions/{promotionId}", deactivatePromotion.Handle).Methods(http.MethodDelete)

	// --- Заказы товаров ---
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/fulfill", fulfillOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// --- Отзывы, медиа, выплаты, аналитика ---
	protected.HandleFunc("/reviews/{reviewId}/reply", replyReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/media/upload-url", createUploadURL.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/cover", setCover.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/payouts/onboarding", startPayoutOnboarding.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/analytics", businessAnalytics.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Scheduler.Enabled {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Warn("Background jobs interrupted: %v", err)
		}
	}

	closePublisher()
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// newPublisher выбирает доставку уведомлений: через SQS для отдельного notifier
// или в фоне внутри процесса API
func newPublisher(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (notificationPublisher, func(), error) {
	if cfg.Queue.Enabled {
		client, err := queue.NewSQSClient(context.Background(), cfg.Queue.Region, cfg.Queue.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Notifications are published to SQS queue %s", cfg.Queue.URL)
		return queue.NewSQSPublisher(client, cfg.Queue.URL, log), func() {}, nil
	}

	publisher := queue.NewInProcessPublisher(notifications.NewDispatcherFromConfig(cfg, m, log), log)
	log.Info("Queue disabled: notifications are dispatched in-process")
	return publisher, publisher.Close, nil
}

type notificationPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

func newObjectStorage(cfg config.StorageConfig, log *logger.Logger) (*objectstorage.Client, error) {
	return objectstorage.NewClient(context.Background(), objectstorage.Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		PublicBaseURL:   cfg.PublicBaseURL,
		UploadTTL:       time.Duration(cfg.UploadTTL) * time.Second,
	}, log)
}
