package backstop

import (
	"context"
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
	"rwapool/pkg/id"
)

type backstopService struct {
	db              *db.DB
	poolStore       core.PoolStore
	eventStore      core.IEventStore
	transferService core.ITransferService
}

// New new backstop service
func New(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore,
	transferService core.ITransferService) core.IBackstopService {
	return &backstopService{
		db:              db,
		poolStore:       poolStore,
		eventStore:      eventStore,
		transferService: transferService,
	}
}

type backstopPayload struct {
	Amount string `json:"amount"`
	Total  string `json:"total"`
}

func (s *backstopService) Deposit(ctx context.Context, user string, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	if pool.BackstopToken == "" {
		return core.ErrTokenContractNotSet
	}

	now := time.Now().Unix()

	deposit, ok := pool.BackstopDeposits[user]
	if !ok {
		deposit = &core.BackstopDeposit{Amount: sdkmath.ZeroInt()}
		pool.BackstopDeposits[user] = deposit
	}

	deposit.Amount, err = fixedpoint.Add(deposit.Amount, amount)
	if err != nil {
		return err
	}
	deposit.DepositedAt = now

	pool.BackstopTotal, err = fixedpoint.Add(pool.BackstopTotal, amount)
	if err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, user, core.PoolAccount, pool.BackstopToken, amount, "backstop_deposit"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBackstopDeposited, user, pool, amount)
	})
}

// QueueWithdrawal start the 17 day exit clock; funds keep covering bad
// debt until the entry is claimed
func (s *backstopService) QueueWithdrawal(ctx context.Context, user string, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	deposit, ok := pool.BackstopDeposits[user]
	if !ok {
		return core.ErrInsufficientBalance
	}

	queued := sdkmath.ZeroInt()
	for _, req := range pool.WithdrawalQueue {
		if req.Address == user {
			queued, err = fixedpoint.Add(queued, req.Amount)
			if err != nil {
				return err
			}
		}
	}

	total, err := fixedpoint.Add(queued, amount)
	if err != nil {
		return err
	}
	if total.GT(deposit.Amount) {
		return core.ErrInsufficientBalance
	}

	pool.WithdrawalQueue = append(pool.WithdrawalQueue, &core.WithdrawalRequest{
		Address:  user,
		Amount:   amount,
		QueuedAt: time.Now().Unix(),
	})

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBackstopQueued, user, pool, amount)
	})
}

// Withdraw claim every matured queue entry at once
func (s *backstopService) Withdraw(ctx context.Context, user string) (sdkmath.Int, error) {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	now := time.Now().Unix()

	matured := sdkmath.ZeroInt()
	found := false
	remaining := pool.WithdrawalQueue[:0]
	for _, req := range pool.WithdrawalQueue {
		if req.Address != user {
			remaining = append(remaining, req)
			continue
		}

		found = true
		if req.QueuedAt+core.BackstopWithdrawalQueueSeconds > now {
			remaining = append(remaining, req)
			continue
		}

		matured, err = fixedpoint.Add(matured, req.Amount)
		if err != nil {
			return sdkmath.Int{}, err
		}
	}

	if !found {
		return sdkmath.Int{}, core.ErrWithdrawalNotQueued
	}
	if !matured.IsPositive() {
		return sdkmath.Int{}, core.ErrWithdrawalNotMatured
	}

	deposit, ok := pool.BackstopDeposits[user]
	if !ok || deposit.Amount.LT(matured) {
		return sdkmath.Int{}, core.ErrInsufficientBalance
	}

	deposit.Amount, err = fixedpoint.Sub(deposit.Amount, matured)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !deposit.Amount.IsPositive() {
		delete(pool.BackstopDeposits, user)
	}

	pool.BackstopTotal, err = fixedpoint.Sub(pool.BackstopTotal, matured)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if pool.BackstopTotal.IsNegative() {
		pool.BackstopTotal = sdkmath.ZeroInt()
	}

	pool.WithdrawalQueue = remaining

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, user, pool.BackstopToken, matured, "backstop_withdraw"); err != nil {
			return err
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBackstopWithdrawn, user, pool, matured)
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return matured, nil
}

func (s *backstopService) createEvent(ctx context.Context, tx *db.DB, typ core.EventType, user string, pool *core.PoolState, amount sdkmath.Int) error {
	payload, err := json.Marshal(backstopPayload{
		Amount: amount.String(),
		Total:  pool.BackstopTotal.String(),
	})
	if err != nil {
		return err
	}

	return s.eventStore.Create(ctx, tx, &core.Event{
		TraceID: id.GenTraceID(),
		Type:    typ,
		User:    user,
		Asset:   pool.BackstopToken,
		Payload: string(payload),
	})
}
