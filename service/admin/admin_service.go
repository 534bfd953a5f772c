package admin

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"

	"rwapool/core"
	"rwapool/internal/rate"
	"rwapool/pkg/fixedpoint"
)

type adminService struct {
	config    *core.Config
	db        *db.DB
	poolStore core.PoolStore
}

// New new admin service
func New(config *core.Config,
	db *db.DB,
	poolStore core.PoolStore) core.IAdminService {
	return &adminService{
		config:    config,
		db:        db,
		poolStore: poolStore,
	}
}

// InitPool create the pool document from the configured defaults.
//
// Pools start on ice; borrowing stays disabled until an admin activates
// the pool and the backstop clears its threshold.
func (s *adminService) InitPool(ctx context.Context, admin string) error {
	if !s.config.IsAdmin(admin) {
		return core.ErrOperationForbidden
	}

	threshold := sdkmath.ZeroInt()
	if raw := s.config.Backstop.Threshold; raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return core.ErrInvalidAmount
		}
		threshold = sdkmath.NewIntFromBigInt(d.Shift(core.PriceDecimals).Truncate(0).BigInt())
	}

	takeRate := s.config.Backstop.TakeRate
	if takeRate < 0 || takeRate > fixedpoint.ScalarRate {
		return core.ErrInvalidAmount
	}

	pool := core.NewPoolState(admin, s.config.Oracle.EndPoint, s.config.Oracle.EndPoint, threshold, takeRate)

	if err := s.poolStore.Create(ctx, pool); err != nil {
		return err
	}

	logger.FromContext(ctx).Infoln("pool initialized by", admin)
	return nil
}

func (s *adminService) SetStatus(ctx context.Context, admin string, status core.PoolStatus) error {
	if status < core.PoolStatusActive || status > core.PoolStatusFrozen {
		return core.ErrInvalidAmount
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		pool.Status = status
		return nil
	})
}

func (s *adminService) SetCollateralFactor(ctx context.Context, admin, token string, factor int64) error {
	if factor < 0 || factor > fixedpoint.ScalarRate {
		return core.ErrInvalidCollateralFactor
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		pool.CollateralFactors[token] = factor
		return nil
	})
}

func (s *adminService) SetRateParams(ctx context.Context, admin, asset string, params *core.InterestRateParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		pool.RateParams[asset] = params
		return nil
	})
}

func (s *adminService) SetTokenContract(ctx context.Context, admin, asset, contract string) error {
	if contract == "" {
		return core.ErrInvalidAmount
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		pool.TokenContracts[asset] = contract
		return nil
	})
}

func (s *adminService) SetBackstopToken(ctx context.Context, admin, token string) error {
	if token == "" {
		return core.ErrInvalidAmount
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		pool.BackstopToken = token
		return nil
	})
}

func (s *adminService) SetBackstopTakeRate(ctx context.Context, admin string, takeRate int64) error {
	if takeRate < 0 || takeRate > fixedpoint.ScalarRate {
		return core.ErrInvalidAmount
	}

	return s.update(ctx, admin, func(pool *core.PoolState) error {
		// settle pending interest at the old take rate first
		now := time.Now().Unix()
		for asset, reserve := range pool.Reserves {
			if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
				return err
			}
		}

		pool.BackstopTakeRate = takeRate
		return nil
	})
}

func (s *adminService) update(ctx context.Context, admin string, fn func(pool *core.PoolState) error) error {
	if !s.config.IsAdmin(admin) {
		return core.ErrOperationForbidden
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(pool); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		return s.poolStore.Save(ctx, tx, pool)
	})
}
