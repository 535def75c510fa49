package business_analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BeautyMarketplace/internal/domain"
)

// defaultPeriodDays период по умолчанию, если from/to не заданы
const defaultPeriodDays = 30

type ServiceStatResponse struct {
	ServiceID    int64  `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenueCents"`
}

type DailyStatResponse struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenueCents"`
}

type RevenueResponse struct {
	GrossCents        int64 `json:"grossCents"`
	DiscountsCents    int64 `json:"discountsCents"`
	PlatformFeesCents int64 `json:"platformFeesCents"`
	ProcessorFees     int64 `json:"processorFeesCents"`
	PayoutsCents      int64 `json:"payoutsCents"`
	OrdersCents       int64 `json:"ordersCents"`
}

type AnalyticsResponse struct {
	BusinessID         int64                 `json:"businessId"`
	From               string                `json:"from"`
	To                 string                `json:"to"`
	BookingsByStatus   map[string]int        `json:"bookingsByStatus"`
	CompletedBookings  int                   `json:"completedBookings"`
	Revenue            RevenueResponse       `json:"revenue"`
	UniqueCustomers    int                   `json:"uniqueCustomers"`
	ReturningCustomers int                   `json:"returningCustomers"`
	AverageRating      float64               `json:"averageRating"`
	ReviewCount        int                   `json:"reviewCount"`
	TopServices        []ServiceStatResponse `json:"topServices"`
	Daily              []DailyStatResponse   `json:"daily"`
}

// parseRange читает from/to; без параметров берутся последние 30 дней
func parseRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	q := r.URL.Query()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	to := today
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to %q: %w", raw, err)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(defaultPeriodDays - 1))
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from %q: %w", raw, err)
		}
		from = parsed
	}

	return from, to, nil
}

func FromDomain(a *domain.BusinessAnalytics) *AnalyticsResponse {
	resp := &AnalyticsResponse{
		BusinessID:        a.BusinessID,
		From:              a.From.Format(domain.DateFormat),
		To:                a.To.Format(domain.DateFormat),
		BookingsByStatus:  make(map[string]int, len(a.BookingsByStatus)),
		CompletedBookings: a.CompletedBookings,
		Revenue: RevenueResponse{
			GrossCents:        a.GrossRevenueCents,
			DiscountsCents:    a.DiscountsCents,
			PlatformFeesCents: a.PlatformFeesCents,
			ProcessorFees:     a.ProcessorFeesCents,
			PayoutsCents:      a.PayoutsCents,
			OrdersCents:       a.OrderRevenueCents,
		},
		UniqueCustomers:    a.UniqueCustomers,
		ReturningCustomers: a.ReturningCustomers,
		AverageRating:      a.AverageRating,
		ReviewCount:        a.ReviewCount,
		TopServices:        make([]ServiceStatResponse, 0, len(a.TopServices)),
		Daily:              make([]DailyStatResponse, 0, len(a.Daily)),
	}

	for status, count := range a.BookingsByStatus {
		resp.BookingsByStatus[string(status)] = count
	}
	for _, s := range a.TopServices {
		resp.TopServices = append(resp.TopServices, ServiceStatResponse{
			ServiceID:    s.ServiceID,
			ServiceName:  s.ServiceName,
			Bookings:     s.Bookings,
			RevenueCents: s.RevenueCents,
		})
	}
	for _, d := range a.Daily {
		resp.Daily = append(resp.Daily, DailyStatResponse{
			Date:         d.Date.Format(domain.DateFormat),
			Bookings:     d.Bookings,
			RevenueCents: d.RevenueCents,
		})
	}

	return resp
}
