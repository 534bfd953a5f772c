package auction

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
	"rwapool/service/health"
)

type fakePoolStore struct {
	pool *core.PoolState
}

func (s *fakePoolStore) Create(ctx context.Context, state *core.PoolState) error {
	s.pool = state
	return nil
}

func (s *fakePoolStore) Load(ctx context.Context) (*core.PoolState, error) {
	return s.pool, nil
}

func (s *fakePoolStore) Save(ctx context.Context, _ *db.DB, state *core.PoolState) error {
	s.pool = state
	return nil
}

type fakeCDPStore struct {
	cdps map[string]*core.CDP
}

func (s *fakeCDPStore) Find(ctx context.Context, user string) (*core.CDP, error) {
	return s.cdps[user], nil
}

func (s *fakeCDPStore) Save(ctx context.Context, _ *db.DB, cdp *core.CDP) error {
	s.cdps[cdp.UserID] = cdp
	return nil
}

func (s *fakeCDPStore) All(ctx context.Context) ([]*core.CDP, error) {
	cdps := make([]*core.CDP, 0, len(s.cdps))
	for _, cdp := range s.cdps {
		cdps = append(cdps, cdp)
	}
	return cdps, nil
}

type fakeBlocks struct {
	block int64
}

func (s *fakeBlocks) CurrentBlock(ctx context.Context) (int64, error) {
	return s.block, nil
}

type fakeOracle struct {
	prices map[string]*core.PriceData
}

func (o *fakeOracle) GetPrice(ctx context.Context, symbol string) (*core.PriceData, error) {
	p, ok := o.prices[symbol]
	if !ok {
		return nil, core.ErrInvalidPrice
	}
	return p, nil
}

func quote(price int64) *core.PriceData {
	return &core.PriceData{
		Price:     sdkmath.NewInt(price),
		Timestamp: time.Now().Unix(),
		Decimals:  core.PriceDecimals,
	}
}

func testPool() *core.PoolState {
	pool := core.NewPoolState("admin", "oracle", "oracle", sdkmath.ZeroInt(), 1_000_000)
	reserve := core.NewReserveData(0)
	reserve.DSupply = sdkmath.NewInt(160_0000000)
	pool.Reserves["USDC"] = reserve
	pool.CollateralFactors["TBILL"] = 7_500_000
	return pool
}

func testService(pool *core.PoolState, cdp *core.CDP, block int64) *Service {
	oracle := &fakeOracle{prices: map[string]*core.PriceData{
		"TBILL": quote(2_0000000),
		"USDC":  quote(1_0000000),
	}}
	cdps := &fakeCDPStore{cdps: map[string]*core.CDP{}}
	if cdp != nil {
		cdps.cdps[cdp.UserID] = cdp
	}
	return New(nil, &fakePoolStore{pool: pool}, cdps, nil,
		health.New(oracle), oracle, &fakeBlocks{block: block}, nil)
}

// A fill that clears the whole position repairs the borrower far past the
// ceiling; it must fail whole and leave the auction standing.
func TestFillLiquidationOverRepaired(t *testing.T) {
	pool := testPool()

	// 100 TBILL at $2 with cf 0.75 against $160 of debt: hf 0.9375
	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(100_0000000)
	cdp.DebtAsset = "USDC"
	cdp.DTokens = sdkmath.NewInt(160_0000000)

	pool.Auctions[2001] = &core.AuctionData{
		Type:  core.AuctionTypeUserLiquidation,
		User:  "alice",
		Bid:   map[string]sdkmath.Int{"USDC": sdkmath.NewInt(160_0000000)},
		Lot:   map[string]sdkmath.Int{"TBILL": sdkmath.NewInt(100_0000000)},
		Block: 0,
	}

	// ten blocks in the bid modifier is still 1.0, so the fill would
	// extinguish the debt entirely
	svc := testService(pool, cdp, 10)

	err := svc.Liquidations().Fill(context.Background(), 2001, "bob")
	assert.ErrorIs(t, err, core.ErrHealthFactorTooHigh)
	assert.Contains(t, pool.Auctions, uint32(2001))
}

func TestFillLiquidationPartialOverRepaired(t *testing.T) {
	pool := testPool()

	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(100_0000000)
	cdp.DebtAsset = "USDC"
	cdp.DTokens = sdkmath.NewInt(160_0000000)

	// repaying $80 leaves hf = 150/80 = 1.875, above the 1.15 ceiling
	pool.Auctions[2002] = &core.AuctionData{
		Type:  core.AuctionTypeUserLiquidation,
		User:  "alice",
		Bid:   map[string]sdkmath.Int{"USDC": sdkmath.NewInt(80_0000000)},
		Lot:   map[string]sdkmath.Int{"TBILL": sdkmath.NewInt(10_0000000)},
		Block: 0,
	}

	svc := testService(pool, cdp, 10)

	err := svc.Liquidations().Fill(context.Background(), 2002, "bob")
	assert.ErrorIs(t, err, core.ErrHealthFactorTooHigh)
}

func TestCreateBadDebtGating(t *testing.T) {
	t.Run("unknown borrower", func(t *testing.T) {
		svc := testService(testPool(), nil, 10)

		_, err := svc.BadDebts().Create(context.Background(), "alice", "USDC")
		assert.ErrorIs(t, err, core.ErrCDPNotFound)
	})

	t.Run("wrong debt asset", func(t *testing.T) {
		cdp := core.NewCDP("alice", 0)
		cdp.DebtAsset = "USDC"
		cdp.DTokens = sdkmath.NewInt(10_0000000)
		svc := testService(testPool(), cdp, 10)

		_, err := svc.BadDebts().Create(context.Background(), "alice", "XAU")
		assert.ErrorIs(t, err, core.ErrDebtAssetMismatch)
	})

	t.Run("no outstanding debt", func(t *testing.T) {
		cdp := core.NewCDP("alice", 0)
		cdp.DebtAsset = "USDC"
		svc := testService(testPool(), cdp, 10)

		_, err := svc.BadDebts().Create(context.Background(), "alice", "USDC")
		assert.ErrorIs(t, err, core.ErrAuctionNotActive)
	})

	t.Run("collateral remains", func(t *testing.T) {
		// positions with collateral left go through a regular liquidation
		cdp := core.NewCDP("alice", 0)
		cdp.DebtAsset = "USDC"
		cdp.DTokens = sdkmath.NewInt(10_0000000)
		cdp.Collateral["TBILL"] = sdkmath.NewInt(1_0000000)
		svc := testService(testPool(), cdp, 10)

		_, err := svc.BadDebts().Create(context.Background(), "alice", "USDC")
		assert.ErrorIs(t, err, core.ErrCDPNotInsolvent)
	})
}

func TestFillLiquidationWrongKind(t *testing.T) {
	pool := testPool()
	pool.Auctions[42] = &core.AuctionData{
		Type:  core.AuctionTypeBadDebt,
		User:  "alice",
		Bid:   map[string]sdkmath.Int{"USDC": sdkmath.NewInt(1_0000000)},
		Lot:   map[string]sdkmath.Int{},
		Block: 0,
	}
	svc := testService(pool, nil, 10)

	err := svc.Liquidations().Fill(context.Background(), 42, "bob")
	assert.ErrorIs(t, err, core.ErrAuctionNotActive)

	err = svc.Liquidations().Fill(context.Background(), 7, "bob")
	require.ErrorIs(t, err, core.ErrAuctionNotFound)
}
