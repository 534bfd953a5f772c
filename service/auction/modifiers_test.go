package auction

import (
	"math"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
)

func TestModifiersUserLiquidation(t *testing.T) {
	one := fixedpoint.ScalarExchange

	cases := []struct {
		name    string
		elapsed int64
		lot     int64
		bid     int64
	}{
		{"start", 0, 0, one},
		{"half ramp", 100, one / 2, one},
		{"ramp done", 200, one, one},
		{"half decay", 300, one, one / 2},
		{"decay done", 400, one, 0},
		{"long after", 10_000, one, 0},
		{"ancient block height", 10_000_000, one, 0},
		{"maximum elapsed", math.MaxInt64, one, 0},
		{"before start", -5, 0, one},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lot, bid := Modifiers(core.AuctionTypeUserLiquidation, c.elapsed)
			assert.Equal(t, c.lot, lot.Int64())
			assert.Equal(t, c.bid, bid.Int64())
		})
	}
}

func TestModifiersBadDebt(t *testing.T) {
	one := fixedpoint.ScalarExchange

	cases := []struct {
		name    string
		elapsed int64
		lot     int64
		bid     int64
	}{
		{"start", 0, 0, one},
		{"quarter", 100, one / 4, one - one/4},
		{"half", 200, one / 2, one / 2},
		{"done", 400, one, 0},
		{"long after", 10_000, one, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lot, bid := Modifiers(core.AuctionTypeBadDebt, c.elapsed)
			assert.Equal(t, c.lot, lot.Int64())
			assert.Equal(t, c.bid, bid.Int64())
		})
	}
}

func TestModifiersInterest(t *testing.T) {
	one := fixedpoint.ScalarExchange

	cases := []struct {
		name    string
		elapsed int64
		lot     int64
		bid     int64
	}{
		{"start", 0, one, one},
		{"half", 100, one, one / 2},
		{"done", 200, one, 0},
		{"long after", 10_000, one, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lot, bid := Modifiers(core.AuctionTypeInterest, c.elapsed)
			assert.Equal(t, c.lot, lot.Int64())
			assert.Equal(t, c.bid, bid.Int64())
		})
	}
}

func TestModifierBounds(t *testing.T) {
	one := fixedpoint.ScalarExchange
	kinds := []core.AuctionType{
		core.AuctionTypeUserLiquidation,
		core.AuctionTypeBadDebt,
		core.AuctionTypeInterest,
	}

	for _, typ := range kinds {
		for elapsed := int64(-10); elapsed <= 1_000; elapsed++ {
			lot, bid := Modifiers(typ, elapsed)
			require.True(t, lot.Int64() >= 0 && lot.Int64() <= one, "lot out of bounds: kind %d elapsed %d", typ, elapsed)
			require.True(t, bid.Int64() >= 0 && bid.Int64() <= one, "bid out of bounds: kind %d elapsed %d", typ, elapsed)
		}

		// far-future heights still land on the clamped endgame
		for _, elapsed := range []int64{10_000_000, math.MaxInt64 / 2, math.MaxInt64} {
			lot, bid := Modifiers(typ, elapsed)
			require.Equal(t, one, lot.Int64(), "kind %d elapsed %d", typ, elapsed)
			require.True(t, bid.IsZero(), "kind %d elapsed %d", typ, elapsed)
		}

		lot, _ := Modifiers(typ, core.BadDebtAuctionDurationBlocks)
		assert.Equal(t, one, lot.Int64(), "lot fully ramped after the longest duration")
	}
}

func TestCollateralPercent(t *testing.T) {
	// cf 0.75 -> premium 1.125; full liquidation of half-covered debt
	percent, err := collateralPercent(7_500_000, fixedpoint.ScalarRate,
		sdkmath.NewInt(500_0000000), sdkmath.NewInt(1000_0000000))
	require.NoError(t, err)
	assert.Equal(t, int64(5_625_000), percent)

	// debt equal to collateral, the premium would overshoot; capped at 1
	percent, err = collateralPercent(7_500_000, fixedpoint.ScalarRate,
		sdkmath.NewInt(1000_0000000), sdkmath.NewInt(1000_0000000))
	require.NoError(t, err)
	assert.Equal(t, fixedpoint.ScalarRate, percent)

	// cf 1.0 leaves no premium
	percent, err = collateralPercent(fixedpoint.ScalarRate, fixedpoint.ScalarRate,
		sdkmath.NewInt(500_0000000), sdkmath.NewInt(1000_0000000))
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), percent)

	// partial liquidation scales linearly
	percent, err = collateralPercent(7_500_000, 5_000_000,
		sdkmath.NewInt(500_0000000), sdkmath.NewInt(1000_0000000))
	require.NoError(t, err)
	assert.Equal(t, int64(2_812_500), percent)
}
