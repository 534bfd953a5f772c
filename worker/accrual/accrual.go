package accrual

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"

	"rwapool/core"
	"rwapool/worker"
)

const checkpointKey = "accrual_checkpoint"

// Accrual keeps every reserve's interest current
type Accrual struct {
	worker.TickWorker
	reserveService core.IReserveService
	property       property.Store
}

// New new accrual worker
func New(reserveService core.IReserveService, property property.Store) *Accrual {
	return &Accrual{
		TickWorker: worker.TickWorker{
			Delay:    10 * time.Second,
			ErrDelay: 30 * time.Second,
		},
		reserveService: reserveService,
		property:       property,
	}
}

// Run run worker
func (w *Accrual) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Accrual) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	now := time.Now().Unix()
	if err := w.reserveService.AccrueAll(ctx, now); err != nil {
		if err == core.ErrNotInitialized {
			return nil
		}

		log.WithError(err).Errorln("accrue all failed")
		return err
	}

	if err := w.property.Save(ctx, checkpointKey, now); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
