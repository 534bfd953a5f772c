package borrow

import (
	"context"
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/internal/rate"
	"rwapool/pkg/fixedpoint"
	"rwapool/pkg/id"
)

type borrowService struct {
	db              *db.DB
	poolStore       core.PoolStore
	cdpStore        core.ICDPStore
	eventStore      core.IEventStore
	transferService core.ITransferService
	healthService   core.IHealthService
}

// New new borrow service
func New(db *db.DB,
	poolStore core.PoolStore,
	cdpStore core.ICDPStore,
	eventStore core.IEventStore,
	transferService core.ITransferService,
	healthService core.IHealthService) core.IBorrowService {
	return &borrowService{
		db:              db,
		poolStore:       poolStore,
		cdpStore:        cdpStore,
		eventStore:      eventStore,
		transferService: transferService,
		healthService:   healthService,
	}
}

type borrowPayload struct {
	Asset   string `json:"asset,omitempty"`
	Token   string `json:"token,omitempty"`
	Amount  string `json:"amount"`
	DTokens string `json:"d_tokens,omitempty"`
}

func (s *borrowService) AddCollateral(ctx context.Context, user, token string, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	if pool.Status == core.PoolStatusFrozen {
		return core.ErrPoolFrozen
	}

	now := time.Now().Unix()
	cdp, err := s.cdpStore.Find(ctx, user)
	if err != nil {
		return err
	}
	if cdp == nil {
		cdp = core.NewCDP(user, now)
	}

	balance, err := fixedpoint.Add(cdp.CollateralAmount(token), amount)
	if err != nil {
		return err
	}
	cdp.Collateral[token] = balance
	cdp.LastUpdate = now

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, user, core.PoolAccount, token, amount, "add_collateral"); err != nil {
			return err
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeCollateralAdded, user, token, &borrowPayload{
			Token:  token,
			Amount: amount.String(),
		})
	})
}

// RemoveCollateral blocked when the position would end up below the
// minimum health factor
func (s *borrowService) RemoveCollateral(ctx context.Context, user, token string, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	cdp, err := s.cdpStore.Find(ctx, user)
	if err != nil {
		return err
	}
	if cdp == nil {
		return core.ErrCDPNotFound
	}

	held := cdp.CollateralAmount(token)
	if amount.GT(held) {
		return core.ErrInsufficientCollateral
	}

	now := time.Now().Unix()

	remaining, err := fixedpoint.Sub(held, amount)
	if err != nil {
		return err
	}
	cdp.Collateral[token] = remaining
	cdp.LastUpdate = now

	poolDirty := false
	if cdp.DTokens.IsPositive() && cdp.DebtAsset != "" {
		debtReserve := pool.Reserve(cdp.DebtAsset, now)
		if err := rate.Accrue(debtReserve, pool.Params(cdp.DebtAsset), pool.BackstopTakeRate, now); err != nil {
			return err
		}
		poolDirty = true

		hf, err := s.healthService.HealthFactor(ctx, pool, cdp)
		if err != nil {
			return err
		}
		if int64(hf) < core.MinHealthFactor {
			return core.ErrHealthFactorTooLow
		}
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, user, token, amount, "remove_collateral"); err != nil {
			return err
		}

		if poolDirty {
			if err := s.poolStore.Save(ctx, tx, pool); err != nil {
				return err
			}
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeCollateralRemoved, user, token, &borrowPayload{
			Token:  token,
			Amount: amount.String(),
		})
	})
}

// Borrow mint dTokens rounding up; a position borrows one asset at a time
func (s *borrowService) Borrow(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	switch pool.Status {
	case core.PoolStatusFrozen:
		return sdkmath.Int{}, core.ErrPoolFrozen
	case core.PoolStatusOnIce:
		return sdkmath.Int{}, core.ErrBorrowDisabled
	}

	if _, ok := pool.TokenContracts[asset]; !ok {
		return sdkmath.Int{}, core.ErrTokenContractNotSet
	}

	if pool.BackstopTotal.LT(pool.BackstopThreshold) {
		return sdkmath.Int{}, core.ErrBorrowDisabled
	}

	cdp, err := s.cdpStore.Find(ctx, user)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if cdp == nil {
		return sdkmath.Int{}, core.ErrCDPNotFound
	}

	if cdp.DebtAsset != "" && cdp.DebtAsset != asset {
		return sdkmath.Int{}, core.ErrDebtAssetMismatch
	}

	now := time.Now().Unix()
	reserve := pool.Reserve(asset, now)
	if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
		return sdkmath.Int{}, err
	}

	if pool.Balance(asset).LT(amount) {
		return sdkmath.Int{}, core.ErrInsufficientLiquidity
	}

	dTokens, err := fixedpoint.ToDTokenUp(amount, reserve.DRate)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !dTokens.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	reserve.DSupply, err = fixedpoint.Add(reserve.DSupply, dTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}

	cdp.DTokens, err = fixedpoint.Add(cdp.DTokens, dTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}
	cdp.DebtAsset = asset
	cdp.LastUpdate = now

	balance, err := fixedpoint.Sub(pool.Balance(asset), amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.PoolBalances[asset] = balance

	hf, err := s.healthService.HealthFactor(ctx, pool, cdp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if int64(hf) < core.MinHealthFactor {
		return sdkmath.Int{}, core.ErrHealthFactorTooLow
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, user, asset, amount, "borrow"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBorrowed, user, asset, &borrowPayload{
			Asset:   asset,
			Amount:  amount.String(),
			DTokens: dTokens.String(),
		})
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return dTokens, nil
}

// Repay burn dTokens rounding down; overpayment is capped at the debt
func (s *borrowService) Repay(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	cdp, err := s.cdpStore.Find(ctx, user)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if cdp == nil {
		return sdkmath.Int{}, core.ErrCDPNotFound
	}

	if cdp.DebtAsset == "" {
		return sdkmath.Int{}, core.ErrDebtAssetNotSet
	}
	if cdp.DebtAsset != asset {
		return sdkmath.Int{}, core.ErrDebtAssetMismatch
	}

	now := time.Now().Unix()
	reserve := pool.Reserve(asset, now)
	if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
		return sdkmath.Int{}, err
	}

	dTokens, err := fixedpoint.ToDTokenDown(amount, reserve.DRate)
	if err != nil {
		return sdkmath.Int{}, err
	}

	if dTokens.GT(cdp.DTokens) {
		dTokens = cdp.DTokens
		amount, err = fixedpoint.FromDTokenUp(dTokens, reserve.DRate)
		if err != nil {
			return sdkmath.Int{}, err
		}
	}
	if !dTokens.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	reserve.DSupply, err = fixedpoint.Sub(reserve.DSupply, dTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if reserve.DSupply.IsNegative() {
		reserve.DSupply = sdkmath.ZeroInt()
	}

	cdp.DTokens, err = fixedpoint.Sub(cdp.DTokens, dTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !cdp.DTokens.IsPositive() {
		cdp.DebtAsset = ""
	}
	cdp.LastUpdate = now

	balance, err := fixedpoint.Add(pool.Balance(asset), amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.PoolBalances[asset] = balance

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, user, core.PoolAccount, asset, amount, "repay"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeRepaid, user, asset, &borrowPayload{
			Asset:   asset,
			Amount:  amount.String(),
			DTokens: dTokens.String(),
		})
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return dTokens, nil
}

func (s *borrowService) createEvent(ctx context.Context, tx *db.DB, typ core.EventType, user, asset string, payload *borrowPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.eventStore.Create(ctx, tx, &core.Event{
		TraceID: id.GenTraceID(),
		Type:    typ,
		User:    user,
		Asset:   asset,
		Payload: string(raw),
	})
}
