package core

import (
	"context"
)

// IAdminService pool administration
type IAdminService interface {
	// InitPool create the pool document, fails if one exists
	InitPool(ctx context.Context, admin string) error
	SetStatus(ctx context.Context, admin string, status PoolStatus) error
	// SetCollateralFactor factor must lie in [0, 1] at 7 decimals
	SetCollateralFactor(ctx context.Context, admin, token string, factor int64) error
	SetRateParams(ctx context.Context, admin, asset string, params *InterestRateParams) error
	SetTokenContract(ctx context.Context, admin, asset, contract string) error
	SetBackstopToken(ctx context.Context, admin, token string) error
	SetBackstopTakeRate(ctx context.Context, admin string, takeRate int64) error
}
