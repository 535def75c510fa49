package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Payments    PaymentsConfig    `toml:"payments"`
	Stripe      StripeConfig      `toml:"stripe"`
	Email       EmailConfig       `toml:"email"`
	SMS         SMSConfig         `toml:"sms"`
	Storage     StorageConfig     `toml:"storage"`
	Queue       QueueConfig       `toml:"queue"`
	UserService UserServiceConfig `toml:"user_service"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	Notifier    NotifierConfig    `toml:"notifier"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PaymentsConfig параметры комиссий и оплаты
type PaymentsConfig struct {
	Currency            string `toml:"currency"`
	PlatformFeeBps      int64  `toml:"platform_fee_bps"`
	ProcessorFeeBps     int64  `toml:"processor_fee_bps"`
	ProcessorFixedCents int64  `toml:"processor_fixed_cents"`
	UnpaidTTLMinutes    int    `toml:"unpaid_ttl_minutes"`
}

// UnpaidTTL сколько ждать оплату до истечения бронирования
func (c PaymentsConfig) UnpaidTTL() time.Duration {
	return time.Duration(c.UnpaidTTLMinutes) * time.Minute
}

// StripeConfig настройки Stripe Connect
type StripeConfig struct {
	SecretKey      string `toml:"secret_key"`
	WebhookSecret  string `toml:"webhook_secret"`
	AccountCountry string `toml:"account_country"`
	RefreshURL     string `toml:"refresh_url"`
	ReturnURL      string `toml:"return_url"`
}

// EmailConfig настройки отправки email через Resend
type EmailConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// SMSConfig настройки SMS шлюза
type SMSConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Sender  string `toml:"sender"`
	Timeout int    `toml:"timeout"` // секунды
}

// StorageConfig настройки объектного хранилища (S3 совместимое)
type StorageConfig struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"` // Для MinIO/локального окружения
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	PublicBaseURL   string `toml:"public_base_url"`
	UploadTTL       int    `toml:"upload_ttl"` // секунды
}

// QueueConfig настройки SQS очереди уведомлений
type QueueConfig struct {
	Enabled         bool   `toml:"enabled"`
	URL             string `toml:"url"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	WaitTimeSeconds int32  `toml:"wait_time_seconds"`
	MaxMessages     int32  `toml:"max_messages"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SchedulerConfig настройки фоновых задач
type SchedulerConfig struct {
	Enabled           bool   `toml:"enabled"`
	ExpireUnpaidSpec  string `toml:"expire_unpaid_spec"`
	RemindersSpec     string `toml:"reminders_spec"`
	ReminderLeadHours int    `toml:"reminder_lead_hours"`
}

// NotifierConfig настройки воркера уведомлений
type NotifierConfig struct {
	MetricsPort int `toml:"metrics_port"` // 0 = без HTTP эндпоинта метрик
}

// Load загружает конфигурацию из TOML файла
// Секреты могут быть переопределены переменными окружения (и файлом .env, если он есть)
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "beauty-marketplace",
		},
		Payments: PaymentsConfig{
			Currency:            "usd",
			PlatformFeeBps:      1000,
			ProcessorFeeBps:     290,
			ProcessorFixedCents: 30,
			UnpaidTTLMinutes:    30,
		},
		Stripe: StripeConfig{
			AccountCountry: "US",
		},
		SMS: SMSConfig{
			Timeout: 5,
		},
		Storage: StorageConfig{
			UploadTTL: 900,
		},
		Queue: QueueConfig{
			WaitTimeSeconds: 20,
			MaxMessages:     10,
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Scheduler: SchedulerConfig{
			ExpireUnpaidSpec:  "@every 1m",
			RemindersSpec:     "@every 5m",
			ReminderLeadHours: 24,
		},
		Notifier: NotifierConfig{
			MetricsPort: 9091,
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.Email.APIKey, "RESEND_API_KEY")
	setString(&cfg.SMS.APIKey, "SMS_API_KEY")
	setString(&cfg.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setString(&cfg.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
	setString(&cfg.Queue.URL, "SQS_QUEUE_URL")
	setString(&cfg.UserService.URL, "USER_SERVICE_URL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Payments.Currency == "":
		return fmt.Errorf("%w: payments.currency is required", ErrInvalidConfig)
	case c.Payments.PlatformFeeBps < 0 || c.Payments.PlatformFeeBps > 10000:
		return fmt.Errorf("%w: payments.platform_fee_bps must be between 0 and 10000", ErrInvalidConfig)
	case c.Payments.ProcessorFeeBps < 0 || c.Payments.ProcessorFeeBps > 10000:
		return fmt.Errorf("%w: payments.processor_fee_bps must be between 0 and 10000", ErrInvalidConfig)
	case c.Payments.ProcessorFixedCents < 0:
		return fmt.Errorf("%w: payments.processor_fixed_cents must not be negative", ErrInvalidConfig)
	case c.Payments.UnpaidTTLMinutes <= 0:
		return fmt.Errorf("%w: payments.unpaid_ttl_minutes must be positive", ErrInvalidConfig)
	case c.Metrics.Enabled && c.Metrics.Path == "":
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	case c.Email.Enabled && (c.Email.APIKey == "" || c.Email.FromEmail == ""):
		return fmt.Errorf("%w: email.api_key and email.from_email are required", ErrInvalidConfig)
	case c.SMS.Enabled && c.SMS.URL == "":
		return fmt.Errorf("%w: sms.url is required when sms is enabled", ErrInvalidConfig)
	case c.Queue.Enabled && c.Queue.URL == "":
		return fmt.Errorf("%w: queue.url is required when queue is enabled", ErrInvalidConfig)
	case c.Scheduler.Enabled && c.Scheduler.ReminderLeadHours <= 0:
		return fmt.Errorf("%w: scheduler.reminder_lead_hours must be positive", ErrInvalidConfig)
	}
	return nil
}
