package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

const (
	// ScalarRate 7 decimals: 75% = 7_500_000
	ScalarRate int64 = 10_000_000
	// ScalarExchange 12 decimals: a 1:1 exchange rate = 10^12
	ScalarExchange int64 = 1_000_000_000_000
	// SecondsPerYear 365 days
	SecondsPerYear int64 = 31_536_000
)

// ReserveData per-asset reserve state.
//
// Token exchange rates (b_rate, d_rate) use the 12 decimal exchange scale,
// everything rate-like (ir_mod, utilization) uses the 7 decimal rate scale.
type ReserveData struct {
	// BRate bToken to underlying conversion rate, underlying = b_tokens * b_rate / 1e12
	BRate sdkmath.Int `json:"b_rate"`
	// DRate dToken to underlying conversion rate, underlying = d_tokens * d_rate / 1e12
	DRate sdkmath.Int `json:"d_rate"`
	// IRMod dynamic interest rate modifier, bounded to [0.1x, 10x]
	IRMod int64 `json:"ir_mod"`
	// BSupply total bToken supply
	BSupply sdkmath.Int `json:"b_supply"`
	// DSupply total dToken supply
	DSupply sdkmath.Int `json:"d_supply"`
	// BackstopCredit interest accumulated for the backstop, in underlying
	BackstopCredit sdkmath.Int `json:"backstop_credit"`
	// LastTime last accrual timestamp, unix seconds
	LastTime int64 `json:"last_time"`
}

// NewReserveData reserve with initial 1:1 rates
func NewReserveData(timestamp int64) *ReserveData {
	return &ReserveData{
		BRate:          sdkmath.NewInt(ScalarExchange),
		DRate:          sdkmath.NewInt(ScalarExchange),
		IRMod:          ScalarRate,
		BSupply:        sdkmath.ZeroInt(),
		DSupply:        sdkmath.ZeroInt(),
		BackstopCredit: sdkmath.ZeroInt(),
		LastTime:       timestamp,
	}
}

// InterestRateParams per-asset rate curve parameters, all 7 decimals
type InterestRateParams struct {
	// TargetUtil target utilization, at most 95%
	TargetUtil int64 `json:"target_util"`
	// MaxUtil utilization where the extreme segment starts, at most 100%
	MaxUtil int64 `json:"max_util"`
	// RBase base rate, always applied
	RBase int64 `json:"r_base"`
	// ROne slope up to target utilization
	ROne int64 `json:"r_one"`
	// RTwo slope from target to max utilization
	RTwo int64 `json:"r_two"`
	// RThree slope above max utilization
	RThree int64 `json:"r_three"`
	// Reactivity rate modifier adjustment speed
	Reactivity int64 `json:"reactivity"`
}

// Validate check params against the curve bounds
func (p *InterestRateParams) Validate() error {
	if p.TargetUtil <= 0 || p.TargetUtil > 9_500_000 {
		return ErrInvalidRateParams
	}
	if p.MaxUtil <= p.TargetUtil || p.MaxUtil > ScalarRate {
		return ErrInvalidRateParams
	}
	if p.RBase < 0 || p.ROne < 0 || p.RTwo < 0 || p.RThree < 0 || p.Reactivity < 0 {
		return ErrInvalidRateParams
	}
	return nil
}

// DefaultRateParams curve used when the admin set nothing for an asset
func DefaultRateParams() *InterestRateParams {
	return &InterestRateParams{
		TargetUtil: 7_500_000,  // 75%
		MaxUtil:    9_500_000,  // 95%
		RBase:      100_000,    // 1%
		ROne:       500_000,    // 5%
		RTwo:       5_000_000,  // 50%
		RThree:     15_000_000, // 150%
		Reactivity: 200,
	}
}

// IReserveService reserve accrual interface
type IReserveService interface {
	// Accrue accrue interest for one asset up to now
	Accrue(ctx context.Context, asset string, now int64) error
	// AccrueAll accrue interest for every reserve up to now
	AccrueAll(ctx context.Context, now int64) error
	// Utilization current utilization for an asset, 7 decimals
	Utilization(ctx context.Context, asset string) (int64, error)
	// BorrowRate current annualized borrow rate for an asset, 7 decimals
	BorrowRate(ctx context.Context, asset string) (int64, error)
}
