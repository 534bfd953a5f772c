package reserve

import (
	"context"
	"encoding/json"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/internal/rate"
	"rwapool/pkg/id"
)

type reserveService struct {
	db         *db.DB
	poolStore  core.PoolStore
	eventStore core.IEventStore
}

// New new reserve service
func New(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore) core.IReserveService {
	return &reserveService{
		db:         db,
		poolStore:  poolStore,
		eventStore: eventStore,
	}
}

type accruedPayload struct {
	Asset    string `json:"asset"`
	BRate    string `json:"b_rate"`
	DRate    string `json:"d_rate"`
	IRMod    int64  `json:"ir_mod"`
	LastTime int64  `json:"last_time"`
}

func (s *reserveService) Accrue(ctx context.Context, asset string, now int64) error {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	reserve, ok := pool.Reserves[asset]
	if !ok {
		return core.ErrReserveNotFound
	}

	if now <= reserve.LastTime {
		return nil
	}

	dRateBefore := reserve.DRate
	if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		// idle reserve: only the clock moved, nothing worth an event
		if reserve.DRate.Equal(dRateBefore) {
			return nil
		}

		return s.createEvent(ctx, tx, asset, reserve)
	})
}

func (s *reserveService) AccrueAll(ctx context.Context, now int64) error {
	log := logger.FromContext(ctx)

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	touched := 0
	accrued := make([]string, 0, len(pool.Reserves))
	for asset, reserve := range pool.Reserves {
		if now <= reserve.LastTime {
			continue
		}

		dRateBefore := reserve.DRate
		if err := rate.Accrue(reserve, pool.Params(asset), pool.BackstopTakeRate, now); err != nil {
			log.WithError(err).Errorln("accrue", asset, "failed")
			return err
		}
		touched++
		if !reserve.DRate.Equal(dRateBefore) {
			accrued = append(accrued, asset)
		}
	}

	if touched == 0 {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		for _, asset := range accrued {
			if err := s.createEvent(ctx, tx, asset, pool.Reserves[asset]); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *reserveService) Utilization(ctx context.Context, asset string) (int64, error) {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return 0, err
	}

	reserve, ok := pool.Reserves[asset]
	if !ok {
		return 0, core.ErrReserveNotFound
	}

	return rate.Utilization(reserve)
}

func (s *reserveService) BorrowRate(ctx context.Context, asset string) (int64, error) {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return 0, err
	}

	reserve, ok := pool.Reserves[asset]
	if !ok {
		return 0, core.ErrReserveNotFound
	}

	return rate.AnnualRate(pool.Params(asset), reserve)
}

func (s *reserveService) createEvent(ctx context.Context, tx *db.DB, asset string, reserve *core.ReserveData) error {
	payload, err := json.Marshal(accruedPayload{
		Asset:    asset,
		BRate:    reserve.BRate.String(),
		DRate:    reserve.DRate.String(),
		IRMod:    reserve.IRMod,
		LastTime: reserve.LastTime,
	})
	if err != nil {
		return err
	}

	return s.eventStore.Create(ctx, tx, &core.Event{
		TraceID: id.GenTraceID(),
		Type:    core.EventTypeInterestAccrued,
		Asset:   asset,
		Payload: string(payload),
	})
}
