package cashier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"

	"rwapool/core"
	"rwapool/pkg/resthttp"
	"rwapool/worker"
)

// Config cashier config
type Config struct {
	Batch int `json:"batch"`
}

// Cashier settles recorded transfers against the token contract gateway
type Cashier struct {
	worker.TickWorker
	config        *core.Config
	db            *db.DB
	transferStore core.ITransferStore
	cfg           Config
}

// New new cashier
func New(config *core.Config,
	db *db.DB,
	transferStore core.ITransferStore,
	cfg Config) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Cashier{
		TickWorker: worker.TickWorker{
			Delay:    300 * time.Millisecond,
			ErrDelay: 3 * time.Second,
		},
		config:        config,
		db:            db,
		transferStore: transferStore,
		cfg:           cfg,
	}
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

var errEOF = errors.New("EOF")

func (w *Cashier) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transferStore.Top(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list transfers")
		return err
	}

	if len(transfers) == 0 {
		return errEOF
	}

	// settle the batch concurrently, each transfer is idempotent by
	// trace id so a partial batch just retries on the next tick
	g, gctx := errgroup.WithContext(ctx)
	for _, transfer := range transfers {
		transfer := transfer
		g.Go(func() error {
			if err := w.settle(gctx, transfer); err != nil {
				log.WithError(err).Errorln("settle transfer", transfer.TraceID, "failed")
				return err
			}

			return w.db.Tx(func(tx *db.DB) error {
				return w.transferStore.MarkHandled(gctx, tx, transfer.ID)
			})
		})
	}

	return g.Wait()
}

type transferRequest struct {
	TraceID  string `json:"trace_id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Memo     string `json:"memo,omitempty"`
}

// settle hand one transfer to the gateway; the trace id keeps retries
// idempotent on the gateway side
func (w *Cashier) settle(ctx context.Context, transfer *core.Transfer) error {
	url := fmt.Sprintf("%s/transfers", w.config.Token.EndPoint)

	req := transferRequest{
		TraceID:  transfer.TraceID,
		Sender:   transfer.Sender,
		Receiver: transfer.Receiver,
		Asset:    transfer.Asset,
		Amount:   transfer.Amount,
		Memo:     transfer.Memo,
	}

	_, err := resthttp.Execute(resthttp.WithRequestID(ctx, transfer.TraceID), "POST", url, req, nil)
	return err
}
