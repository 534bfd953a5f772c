package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker a background loop
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a tick function with a delay between rounds, backing
// off after a failed round.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay > 0 {
		return w.Delay
	}
	return 100 * time.Millisecond
}

func (w *TickWorker) errDelay() time.Duration {
	if w.ErrDelay > 0 {
		return w.ErrDelay
	}
	return time.Second
}

// StartTick run onTick until the context is cancelled
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onTick(ctx); err != nil {
				dur = w.errDelay()
			} else {
				dur = w.delay()
			}
			timer.Reset(dur)
		}
	}
}

// CronWorker adapts a cron schedule to the Worker interface; the job
// never runs concurrently with itself.
type CronWorker struct {
	Spec     string
	Location string
	OnWork   func(ctx context.Context) error

	running bool
}

func (w *CronWorker) Run(ctx context.Context) error {
	l, _ := time.LoadLocation(w.Location)
	c := cron.New(cron.WithLocation(l))

	if _, err := c.AddFunc(w.Spec, func() {
		if w.running {
			return
		}
		w.running = true
		defer func() { w.running = false }()

		_ = w.OnWork(ctx)
	}); err != nil {
		return err
	}

	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return ctx.Err()
}
