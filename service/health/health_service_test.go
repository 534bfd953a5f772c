package health

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
)

type fakeOracle struct {
	prices map[string]*core.PriceData
}

func (o *fakeOracle) GetPrice(ctx context.Context, symbol string) (*core.PriceData, error) {
	p, ok := o.prices[symbol]
	if !ok {
		return nil, core.ErrInvalidPrice
	}

	if err := p.Validate(time.Now().Unix()); err != nil {
		return nil, err
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
	pool.Reserves["USDC"] = core.NewReserveData(0)
	pool.CollateralFactors["TBILL"] = 7_500_000
	return pool
}

func TestHealthFactor(t *testing.T) {
	svc := New(&fakeOracle{prices: map[string]*core.PriceData{
		"TBILL": quote(2_0000000),
		"USDC":  quote(1_0000000),
	}})

	pool := testPool()

	// 100 TBILL at $2 with cf 0.75 against 50 USDC of debt: hf = 150/50
	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(100_0000000)
	cdp.DebtAsset = "USDC"
	cdp.DTokens = sdkmath.NewInt(50_0000000)

	hf, err := svc.HealthFactor(context.Background(), pool, cdp)
	require.NoError(t, err)
	assert.Equal(t, uint32(30_000_000), hf)

	collateral, err := svc.CollateralValue(context.Background(), pool, cdp)
	require.NoError(t, err)
	assert.Equal(t, int64(150_0000000), collateral.Int64())

	raw, err := svc.RawCollateralValue(context.Background(), pool, cdp)
	require.NoError(t, err)
	assert.Equal(t, int64(200_0000000), raw.Int64())

	debt, err := svc.DebtValue(context.Background(), pool, cdp)
	require.NoError(t, err)
	assert.Equal(t, int64(50_0000000), debt.Int64())
}

func TestHealthFactorNoDebt(t *testing.T) {
	svc := New(&fakeOracle{prices: map[string]*core.PriceData{
		"TBILL": quote(2_0000000),
	}})

	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(100_0000000)

	hf, err := svc.HealthFactor(context.Background(), testPool(), cdp)
	require.NoError(t, err)
	assert.Equal(t, core.MaxHealthFactorValue, hf)
}

func TestHealthFactorSaturates(t *testing.T) {
	svc := New(&fakeOracle{prices: map[string]*core.PriceData{
		"TBILL": quote(2_0000000),
		"USDC":  quote(1_0000000),
	}})

	// dust debt against a large position pushes the ratio past uint32
	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(1_000_000_0000000)
	cdp.DebtAsset = "USDC"
	cdp.DTokens = sdkmath.NewInt(10000)

	hf, err := svc.HealthFactor(context.Background(), testPool(), cdp)
	require.NoError(t, err)
	assert.Equal(t, core.MaxHealthFactorValue, hf)
}

func TestHealthFactorStalePrice(t *testing.T) {
	stale := quote(2_0000000)
	stale.Timestamp -= core.PriceStalenessSeconds + 60

	svc := New(&fakeOracle{prices: map[string]*core.PriceData{
		"TBILL": stale,
		"USDC":  quote(1_0000000),
	}})

	cdp := core.NewCDP("alice", 0)
	cdp.Collateral["TBILL"] = sdkmath.NewInt(100_0000000)
	cdp.DebtAsset = "USDC"
	cdp.DTokens = sdkmath.NewInt(50_0000000)

	_, err := svc.HealthFactor(context.Background(), testPool(), cdp)
	assert.ErrorIs(t, err, core.ErrStalePrice)
}

func TestDebtValueUnknownReserve(t *testing.T) {
	svc := New(&fakeOracle{prices: map[string]*core.PriceData{
		"XAU": quote(1_0000000),
	}})

	cdp := core.NewCDP("alice", 0)
	cdp.DebtAsset = "XAU"
	cdp.DTokens = sdkmath.NewInt(1_0000000)

	_, err := svc.DebtValue(context.Background(), testPool(), cdp)
	assert.ErrorIs(t, err, core.ErrReserveNotFound)
}
