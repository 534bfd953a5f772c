package fixedpoint

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
)

func TestRoundingDirection(t *testing.T) {
	// a rate slightly above 1:1 so the division does not come out even
	rate := sdkmath.NewInt(ScalarExchange + 37)
	amount := sdkmath.NewInt(1_000_000)

	down, err := ToBTokenDown(amount, rate)
	require.NoError(t, err)
	up, err := ToBTokenUp(amount, rate)
	require.NoError(t, err)

	assert.True(t, down.LTE(up), "floor conversion must not exceed ceil conversion")
	assert.True(t, up.Sub(down).LTE(sdkmath.OneInt()))
}

func TestDepositWithdrawNeverProfits(t *testing.T) {
	rates := []int64{
		ScalarExchange,
		ScalarExchange + 1,
		ScalarExchange*2 - 333,
		ScalarExchange * 3,
	}
	amounts := []int64{1, 7, 999, 1_000_000, 123_456_789}

	for _, r := range rates {
		rate := sdkmath.NewInt(r)
		for _, a := range amounts {
			amount := sdkmath.NewInt(a)

			bTokens, err := ToBTokenDown(amount, rate)
			require.NoError(t, err)
			back, err := FromBToken(bTokens, rate)
			require.NoError(t, err)

			assert.True(t, back.LTE(amount),
				"deposit then withdraw paid out more than deposited: rate=%d amount=%d", r, a)
		}
	}
}

func TestBorrowMintsAtLeastRepayBurns(t *testing.T) {
	rate := sdkmath.NewInt(ScalarExchange + 999_999)
	amount := sdkmath.NewInt(5_000_001)

	minted, err := ToDTokenUp(amount, rate)
	require.NoError(t, err)
	burned, err := ToDTokenDown(amount, rate)
	require.NoError(t, err)

	assert.True(t, burned.LTE(minted))
}

func TestDivisionByZero(t *testing.T) {
	_, err := ToBTokenDown(sdkmath.NewInt(100), sdkmath.ZeroInt())
	assert.Equal(t, core.ErrArithmetic, err)

	_, err = DivRate(sdkmath.NewInt(100), sdkmath.ZeroInt())
	assert.Equal(t, core.ErrArithmetic, err)
}

func TestOverflowDetected(t *testing.T) {
	huge := sdkmath.NewIntFromBigInt(maxInt128.BigInt())

	_, err := MulDiv(huge, huge, sdkmath.OneInt())
	assert.Equal(t, core.ErrArithmetic, err)

	// operand already out of range
	over := huge.Add(sdkmath.OneInt())
	_, err = MulRate(over, sdkmath.OneInt())
	assert.Equal(t, core.ErrArithmetic, err)
}

func TestExactValues(t *testing.T) {
	// 1000 underlying at a 1.25 exchange rate
	rate := sdkmath.NewInt(1_250_000_000_000)
	amount := sdkmath.NewInt(1000)

	bTokens, err := ToBTokenDown(amount, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(800), bTokens.Int64())

	owed, err := FromDTokenUp(sdkmath.NewInt(801), rate)
	require.NoError(t, err)
	// 801 * 1.25 = 1001.25, ceil
	assert.Equal(t, int64(1002), owed.Int64())

	floor, err := FromDToken(sdkmath.NewInt(801), rate)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), floor.Int64())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, int64(5), Clamp(1, 5, 10))
	assert.Equal(t, int64(10), Clamp(50, 5, 10))
	assert.Equal(t, int64(7), Clamp(7, 5, 10))
}
