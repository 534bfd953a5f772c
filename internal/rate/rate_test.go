package rate

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
)

func testParams() *core.InterestRateParams {
	return &core.InterestRateParams{
		TargetUtil: 7_500_000,
		MaxUtil:    9_500_000,
		RBase:      100_000,
		ROne:       500_000,
		RTwo:       5_000_000,
		RThree:     15_000_000,
		Reactivity: 200,
	}
}

func testReserve() *core.ReserveData {
	r := core.NewReserveData(0)
	r.BSupply = sdkmath.NewInt(1_000_000).Mul(sdkmath.NewInt(fixedpoint.ScalarExchange))
	r.DSupply = sdkmath.NewInt(800_000).Mul(sdkmath.NewInt(fixedpoint.ScalarExchange))
	return r
}

func TestUtilization(t *testing.T) {
	r := testReserve()

	util, err := Utilization(r)
	require.NoError(t, err)
	assert.Equal(t, int64(8_000_000), util, "800k borrowed of 1m supplied is 80%")

	r.BSupply = sdkmath.ZeroInt()
	util, err = Utilization(r)
	require.NoError(t, err)
	assert.Equal(t, int64(0), util)

	// liabilities above supply cap at 100%
	r = testReserve()
	r.DSupply = r.BSupply.Add(sdkmath.NewInt(1))
	util, err = Utilization(r)
	require.NoError(t, err)
	assert.Equal(t, fixedpoint.ScalarRate, util)
}

func TestInterestRateSegments(t *testing.T) {
	params := testParams()
	mod := fixedpoint.ScalarRate

	// segment 1 at half target: (0.5)*r_one + r_base
	r, err := InterestRate(params, 3_750_000, mod)
	require.NoError(t, err)
	assert.Equal(t, int64(350_000), r.Int64())

	// segment 2 at 80%: ((80-75)/(95-75))*r_two + r_one + r_base
	r, err = InterestRate(params, 8_000_000, mod)
	require.NoError(t, err)
	assert.Equal(t, int64(1_850_000), r.Int64())

	// segment 3 at 97.5%: half of r_three plus the full lower curve
	r, err = InterestRate(params, 9_750_000, mod)
	require.NoError(t, err)
	assert.Equal(t, int64(7_500_000+5_000_000+500_000+100_000), r.Int64())
}

func TestTopSegmentIgnoresModifier(t *testing.T) {
	params := testParams()

	low, err := InterestRate(params, 9_750_000, IRModMin)
	require.NoError(t, err)
	high, err := InterestRate(params, 9_750_000, IRModMax)
	require.NoError(t, err)

	assert.True(t, low.Equal(high), "extreme utilization rates must not be dampened")
}

func TestModifierScalesLowerSegments(t *testing.T) {
	params := testParams()

	base, err := InterestRate(params, 8_000_000, fixedpoint.ScalarRate)
	require.NoError(t, err)
	doubled, err := InterestRate(params, 8_000_000, fixedpoint.ScalarRate*2)
	require.NoError(t, err)

	assert.True(t, doubled.Equal(base.MulRaw(2)))
}

func TestCalcAccrualNoTimeTravel(t *testing.T) {
	params := testParams()

	accrual, mod, err := CalcAccrual(params, 8_000_000, fixedpoint.ScalarRate, 100, 100)
	require.NoError(t, err)
	assert.True(t, accrual.Equal(fixedpoint.OneExchange()))
	assert.Equal(t, fixedpoint.ScalarRate, mod)

	accrual, _, err = CalcAccrual(params, 8_000_000, fixedpoint.ScalarRate, 100, 50)
	require.NoError(t, err)
	assert.True(t, accrual.Equal(fixedpoint.OneExchange()))
}

// The reference scenario: one year at 80% utilization lands exactly on the
// segment two annual rate.
func TestAccrueOneYear(t *testing.T) {
	params := testParams()
	reserve := testReserve()

	util, err := Utilization(reserve)
	require.NoError(t, err)
	require.Equal(t, int64(8_000_000), util)

	accrual, newMod, err := CalcAccrual(params, util, reserve.IRMod, 0, fixedpoint.SecondsPerYear)
	require.NoError(t, err)

	// rate 18.5% for a full year: accrual factor 1.185 at 12 decimals
	assert.Equal(t, int64(1_185_000_000_000), accrual.Int64())

	// utilization sat 5 points above target for a year; the controller
	// pins at the upper bound
	assert.Equal(t, IRModMax, newMod)

	require.NoError(t, ApplyAccrual(reserve, 0, accrual, newMod, fixedpoint.SecondsPerYear))

	assert.Equal(t, int64(1_185_000_000_000), reserve.DRate.Int64())
	assert.Equal(t, int64(1_185_000_000_000), reserve.BRate.Int64())
	assert.Equal(t, fixedpoint.SecondsPerYear, reserve.LastTime)
	assert.True(t, reserve.BackstopCredit.IsZero())
}

func TestAccrueBackstopTake(t *testing.T) {
	params := testParams()
	reserve := testReserve()
	takeRate := int64(1_000_000) // 10%

	accrual, newMod, err := CalcAccrual(params, 8_000_000, reserve.IRMod, 0, fixedpoint.SecondsPerYear)
	require.NoError(t, err)
	require.NoError(t, ApplyAccrual(reserve, takeRate, accrual, newMod, fixedpoint.SecondsPerYear))

	// d_rate grows by the full accrual
	assert.Equal(t, int64(1_185_000_000_000), reserve.DRate.Int64())

	// interest earned is 800k * 0.185, the backstop keeps 10% of it
	wantCredit := sdkmath.NewInt(800_000).
		Mul(sdkmath.NewInt(fixedpoint.ScalarExchange)).
		MulRaw(185_000_000_000).
		QuoRaw(fixedpoint.ScalarExchange).
		QuoRaw(10)
	assert.True(t, reserve.BackstopCredit.Equal(wantCredit))

	// lenders get the remaining 90% of the growth
	assert.Equal(t, int64(1_166_500_000_000), reserve.BRate.Int64())
}

// A reserve with deposits but no borrowers earns nothing: a year passes and
// only the clock moves.
func TestAccrueIdleReserve(t *testing.T) {
	params := testParams()
	reserve := testReserve()
	reserve.DSupply = sdkmath.ZeroInt()

	require.NoError(t, Accrue(reserve, params, 1_000_000, fixedpoint.SecondsPerYear))

	assert.Equal(t, fixedpoint.ScalarExchange, reserve.DRate.Int64())
	assert.Equal(t, fixedpoint.ScalarExchange, reserve.BRate.Int64())
	assert.Equal(t, fixedpoint.ScalarRate, reserve.IRMod)
	assert.True(t, reserve.BackstopCredit.IsZero())
	assert.Equal(t, fixedpoint.SecondsPerYear, reserve.LastTime)
}

func TestAccrueEmptyReserve(t *testing.T) {
	params := testParams()
	reserve := core.NewReserveData(0)

	require.NoError(t, Accrue(reserve, params, 1_000_000, fixedpoint.SecondsPerYear))

	assert.Equal(t, fixedpoint.ScalarExchange, reserve.DRate.Int64())
	assert.Equal(t, fixedpoint.ScalarExchange, reserve.BRate.Int64())
	assert.Equal(t, fixedpoint.ScalarRate, reserve.IRMod)
	assert.Equal(t, fixedpoint.SecondsPerYear, reserve.LastTime)
}

func TestAccrueActiveReserve(t *testing.T) {
	params := testParams()
	reserve := testReserve()

	require.NoError(t, Accrue(reserve, params, 0, fixedpoint.SecondsPerYear))

	assert.Equal(t, int64(1_185_000_000_000), reserve.DRate.Int64())
	assert.Equal(t, int64(1_185_000_000_000), reserve.BRate.Int64())
	assert.Equal(t, fixedpoint.SecondsPerYear, reserve.LastTime)
}

func TestRatesNeverDecrease(t *testing.T) {
	params := testParams()
	reserve := testReserve()

	last := reserve.DRate
	lastB := reserve.BRate
	for now := int64(3600); now <= 10*3600; now += 3600 {
		util, err := Utilization(reserve)
		require.NoError(t, err)

		accrual, mod, err := CalcAccrual(params, util, reserve.IRMod, reserve.LastTime, now)
		require.NoError(t, err)
		require.NoError(t, ApplyAccrual(reserve, 500_000, accrual, mod, now))

		assert.True(t, reserve.DRate.GTE(last))
		assert.True(t, reserve.BRate.GTE(lastB))
		last = reserve.DRate
		lastB = reserve.BRate
	}
}

func TestIRModBounds(t *testing.T) {
	params := testParams()

	cases := []struct {
		util  int64
		mod   int64
		delta int64
	}{
		{0, fixedpoint.ScalarRate, 1},
		{0, IRModMin, fixedpoint.SecondsPerYear * 10},
		{fixedpoint.ScalarRate, IRModMax, fixedpoint.SecondsPerYear * 10},
		{9_999_999, fixedpoint.ScalarRate, 3600},
		{1, IRModMin + 1, 86400},
	}

	for _, c := range cases {
		_, mod, err := CalcAccrual(params, c.util, c.mod, 0, c.delta)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, mod, IRModMin)
		assert.LessOrEqual(t, mod, IRModMax)
	}
}
