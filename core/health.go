package core

import (
	"context"
	"math"

	sdkmath "cosmossdk.io/math"
)

const (
	// HealthFactorOne health factor 1.0 at 7 decimals; below it a
	// position is liquidatable
	HealthFactorOne int64 = 10_000_000
	// MinHealthFactor floor after borrow or collateral removal, 1.10
	MinHealthFactor int64 = 11_000_000
	// MaxHealthFactor ceiling after a liquidation fill, 1.15
	MaxHealthFactor int64 = 11_500_000
	// MaxHealthFactorValue sentinel for debt-free positions
	MaxHealthFactorValue uint32 = math.MaxUint32
)

// IHealthService health factor and position valuation
type IHealthService interface {
	// HealthFactor risk adjusted collateral over debt, 7 decimals,
	// saturating at MaxHealthFactorValue when debt is zero
	HealthFactor(ctx context.Context, pool *PoolState, cdp *CDP) (uint32, error)
	// CollateralValue risk adjusted value of all collateral, 7 decimals
	CollateralValue(ctx context.Context, pool *PoolState, cdp *CDP) (sdkmath.Int, error)
	// RawCollateralValue unfactored value of all collateral, 7 decimals
	RawCollateralValue(ctx context.Context, pool *PoolState, cdp *CDP) (sdkmath.Int, error)
	// DebtValue oracle value of the outstanding debt, 7 decimals
	DebtValue(ctx context.Context, pool *PoolState, cdp *CDP) (sdkmath.Int, error)
}
