package domain

import "errors"

var (
	// ErrInvalidAmount сумма платежа отрицательная
	ErrInvalidAmount = errors.New("fees: amount must not be negative")

	// ErrAmountTooSmall комиссии превышают сумму платежа
	ErrAmountTooSmall = errors.New("fees: amount is too small to cover fees")
)

// FeePolicy параметры комиссий платформы и платёжной системы
// Проценты задаются в базисных пунктах (1 bp = 0.01%)
type FeePolicy struct {
	PlatformFeeBps      int64
	ProcessorFeeBps     int64
	ProcessorFixedCents int64
}

// FeeSplit распределение платежа между платформой, процессингом и бизнесом
type FeeSplit struct {
	TotalCents        int64
	PlatformFeeCents  int64
	ProcessorFeeCents int64
	PayoutCents       int64
}

// ApplicationFeeCents комиссия, удерживаемая при destination charge
func (s FeeSplit) ApplicationFeeCents() int64 {
	return s.PlatformFeeCents + s.ProcessorFeeCents
}

// SplitFees считает комиссии и выплату бизнесу
func SplitFees(totalCents int64, policy FeePolicy) (FeeSplit, error) {
	if totalCents < 0 {
		return FeeSplit{}, ErrInvalidAmount
	}
	if totalCents == 0 {
		return FeeSplit{}, nil
	}

	platform := bpsOf(totalCents, policy.PlatformFeeBps)
	processor := bpsOf(totalCents, policy.ProcessorFeeBps) + policy.ProcessorFixedCents

	payout := totalCents - platform - processor
	if payout < 0 {
		return FeeSplit{}, ErrAmountTooSmall
	}

	return FeeSplit{
		TotalCents:        totalCents,
		PlatformFeeCents:  platform,
		ProcessorFeeCents: processor,
		PayoutCents:       payout,
	}, nil
}

func bpsOf(amountCents, bps int64) int64 {
	return (amountCents*bps + 5000) / 10000
}
