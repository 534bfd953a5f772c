package supply

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

type supplyService struct {
	db              *db.DB
	poolStore       core.PoolStore
	eventStore      core.IEventStore
	transferService core.ITransferService
}

// New new supply service
func New(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore,
	transferService core.ITransferService) core.ISupplyService {
	return &supplyService{
		db:              db,
		poolStore:       poolStore,
		eventStore:      eventStore,
		transferService: transferService,
	}
}

type supplyPayload struct {
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
	BTokens string `json:"b_tokens"`
}

// Deposit underlying in, bTokens minted rounding down
func (s *supplyService) Deposit(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	if pool.Status == core.PoolStatusFrozen {
		return sdkmath.Int{}, core.ErrPoolFrozen
	}

	now := time.Now().Unix()
	reserve := pool.Reserve(asset, now)
	if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
		return sdkmath.Int{}, err
	}

	bTokens, err := fixedpoint.ToBTokenDown(amount, reserve.BRate)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !bTokens.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	reserve.BSupply, err = fixedpoint.Add(reserve.BSupply, bTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}

	balance, err := fixedpoint.Add(pool.Balance(asset), amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.PoolBalances[asset] = balance

	held, err := fixedpoint.Add(pool.BTokenBalance(user, asset), bTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.SetBTokenBalance(user, asset, held)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, user, core.PoolAccount, asset, amount, "deposit"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeDeposited, user, asset, amount, bTokens)
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return bTokens, nil
}

// Withdraw bTokens burned, underlying paid out rounding down
func (s *supplyService) Withdraw(ctx context.Context, user, asset string, bTokens sdkmath.Int) (sdkmath.Int, error) {
	if bTokens.IsNil() || !bTokens.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	reserve, ok := pool.Reserves[asset]
	if !ok {
		return sdkmath.Int{}, core.ErrReserveNotFound
	}

	now := time.Now().Unix()
	if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
		return sdkmath.Int{}, err
	}

	held := pool.BTokenBalance(user, asset)
	if bTokens.GT(held) {
		return sdkmath.Int{}, core.ErrInsufficientBalance
	}

	amount, err := fixedpoint.FromBToken(bTokens, reserve.BRate)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !amount.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	if pool.Balance(asset).LT(amount) {
		return sdkmath.Int{}, core.ErrInsufficientLiquidity
	}

	reserve.BSupply, err = fixedpoint.Sub(reserve.BSupply, bTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}

	balance, err := fixedpoint.Sub(pool.Balance(asset), amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.PoolBalances[asset] = balance

	remaining, err := fixedpoint.Sub(held, bTokens)
	if err != nil {
		return sdkmath.Int{}, err
	}
	pool.SetBTokenBalance(user, asset, remaining)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, user, asset, amount, "withdraw"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeWithdrawn, user, asset, amount, bTokens)
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return amount, nil
}

func (s *supplyService) createEvent(ctx context.Context, tx *db.DB, typ core.EventType, user, asset string, amount, bTokens sdkmath.Int) error {
	payload, err := json.Marshal(supplyPayload{
		Asset:   asset,
		Amount:  amount.String(),
		BTokens: bTokens.String(),
	})
	if err != nil {
		return err
	}

	return s.eventStore.Create(ctx, tx, &core.Event{
		TraceID: id.GenTraceID(),
		Type:    typ,
		User:    user,
		Asset:   asset,
		Payload: string(payload),
	})
}
