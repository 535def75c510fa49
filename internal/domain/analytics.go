package domain

import "time"

// ServiceStat популярность услуги за период
type ServiceStat struct {
	ServiceID    int64
	ServiceName  string
	Bookings     int
	RevenueCents int64
}

// DailyStat показатели за день
type DailyStat struct {
	Date         time.Time
	Bookings     int
	RevenueCents int64
}

// BusinessAnalytics сводные показатели бизнеса за период
type BusinessAnalytics struct {
	BusinessID int64
	From       time.Time
	To         time.Time

	BookingsByStatus  map[BookingStatus]int
	CompletedBookings int

	GrossRevenueCents  int64
	DiscountsCents     int64
	PlatformFeesCents  int64
	ProcessorFeesCents int64
	PayoutsCents       int64
	OrderRevenueCents  int64

	UniqueCustomers    int
	ReturningCustomers int

	AverageRating float64
	ReviewCount   int

	TopServices []ServiceStat
	Daily       []DailyStat
}

// AnalyticsTopServicesLimit сколько услуг попадает в топ
const AnalyticsTopServicesLimit = 5

// PaymentTotals агрегаты по успешным платежам
type PaymentTotals struct {
	GrossCents        int64
	PlatformFeeCents  int64
	ProcessorFeeCents int64
	PayoutCents       int64
}

// CustomerCounts уникальные и вернувшиеся клиенты
type CustomerCounts struct {
	Unique    int
	Returning int
}
