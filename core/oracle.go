package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

const (
	// PriceStalenessSeconds reject prices older than this, 24 hours
	PriceStalenessSeconds int64 = 24 * 60 * 60
	// PriceDecimals oracle price scale
	PriceDecimals int32 = 7
)

// PriceData one oracle quote
type PriceData struct {
	// Price scaled by 10^Decimals
	Price     sdkmath.Int `json:"price"`
	Timestamp int64       `json:"timestamp"`
	Decimals  int32       `json:"decimals"`
}

// Validate reject non-positive or stale quotes
func (p *PriceData) Validate(now int64) error {
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Timestamp+PriceStalenessSeconds < now {
		return ErrStalePrice
	}
	return nil
}

// IOracleService price lookups for collateral tokens and debt assets
type IOracleService interface {
	// GetPrice latest validated quote for a symbol
	GetPrice(ctx context.Context, symbol string) (*PriceData, error)
}
