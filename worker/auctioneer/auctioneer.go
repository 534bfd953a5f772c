package auctioneer

import (
	"context"

	"github.com/fox-one/pkg/logger"

	"rwapool/core"
	"rwapool/worker"
)

// Auctioneer starts interest auctions for reserves whose backstop credit
// crossed the minimum.
type Auctioneer struct {
	location        string
	poolStore       core.PoolStore
	interestService core.IInterestAuctionService
}

// New new auctioneer worker
func New(location string,
	poolStore core.PoolStore,
	interestService core.IInterestAuctionService) *Auctioneer {
	return &Auctioneer{
		location:        location,
		poolStore:       poolStore,
		interestService: interestService,
	}
}

// Run run worker, scanning once a minute
func (w *Auctioneer) Run(ctx context.Context) error {
	cw := &worker.CronWorker{
		Spec:     "@every 1m",
		Location: w.location,
		OnWork:   w.onWork,
	}

	return cw.Run(ctx)
}

func (w *Auctioneer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "auctioneer")

	pool, err := w.poolStore.Load(ctx)
	if err != nil {
		if err == core.ErrNotInitialized {
			return nil
		}

		log.WithError(err).Errorln("load pool failed")
		return err
	}

	for asset, reserve := range pool.Reserves {
		if reserve.BackstopCredit.LT(core.MinInterestAuctionAmount) {
			continue
		}

		if hasLiveInterestAuction(pool, asset) {
			continue
		}

		auctionID, err := w.interestService.Create(ctx, asset)
		if err != nil {
			log.WithError(err).Errorln("create interest auction", asset, "failed")
			continue
		}

		log.Infoln("interest auction", auctionID, "created for", asset)
	}

	return nil
}

func hasLiveInterestAuction(pool *core.PoolState, asset string) bool {
	for _, auction := range pool.Auctions {
		if auction.Type != core.AuctionTypeInterest {
			continue
		}
		if _, ok := auction.Lot[asset]; ok {
			return true
		}
	}
	return false
}
