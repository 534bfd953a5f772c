package auction

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
)

// Service runs the three Dutch auction kinds over the shared auction map.
//
// All three kinds ramp over the ledger block counter, not wall clock.
type Service struct {
	db              *db.DB
	poolStore       core.PoolStore
	cdpStore        core.ICDPStore
	eventStore      core.IEventStore
	healthService   core.IHealthService
	oracleService   core.IOracleService
	blockService    core.IBlockService
	transferService core.ITransferService
}

// New new auction service
func New(db *db.DB,
	poolStore core.PoolStore,
	cdpStore core.ICDPStore,
	eventStore core.IEventStore,
	healthService core.IHealthService,
	oracleService core.IOracleService,
	blockService core.IBlockService,
	transferService core.ITransferService) *Service {
	return &Service{
		db:              db,
		poolStore:       poolStore,
		cdpStore:        cdpStore,
		eventStore:      eventStore,
		healthService:   healthService,
		oracleService:   oracleService,
		blockService:    blockService,
		transferService: transferService,
	}
}

// Liquidations the user liquidation facade
func (s *Service) Liquidations() core.ILiquidationService { return liquidations{s} }

// BadDebts the bad debt auction facade
func (s *Service) BadDebts() core.IBadDebtService { return badDebts{s} }

// Interests the interest auction facade
func (s *Service) Interests() core.IInterestAuctionService { return interests{s} }

type liquidations struct{ *Service }

func (s liquidations) Initiate(ctx context.Context, borrower, collateralToken, debtAsset string, liquidationPercent int64) (uint32, error) {
	return s.initiateLiquidation(ctx, borrower, collateralToken, debtAsset, liquidationPercent)
}

func (s liquidations) Fill(ctx context.Context, auctionID uint32, liquidator string) error {
	return s.fillLiquidation(ctx, auctionID, liquidator)
}

type badDebts struct{ *Service }

func (s badDebts) Create(ctx context.Context, borrower, debtAsset string) (uint32, error) {
	return s.createBadDebt(ctx, borrower, debtAsset)
}

func (s badDebts) Fill(ctx context.Context, auctionID uint32, bidder string, amount sdkmath.Int) (sdkmath.Int, error) {
	return s.fillBadDebt(ctx, auctionID, bidder, amount)
}

type interests struct{ *Service }

func (s interests) Create(ctx context.Context, asset string) (uint32, error) {
	return s.createInterest(ctx, asset)
}

func (s interests) Fill(ctx context.Context, auctionID uint32, bidder, asset string, fillPercent int64) (sdkmath.Int, sdkmath.Int, error) {
	return s.fillInterest(ctx, auctionID, bidder, asset, fillPercent)
}

// single auction entry in a one element bid or lot map
func singleEntry(m map[string]sdkmath.Int) (string, sdkmath.Int, bool) {
	for k, v := range m {
		return k, v, true
	}
	return "", sdkmath.Int{}, false
}
