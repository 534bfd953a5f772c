// Package rate implements the interest rate model: a three segment
// piecewise linear curve over utilization, a self adjusting rate modifier,
// and the per-accrual growth factors for the two share token rates.
package rate

import (
	sdkmath "cosmossdk.io/math"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
)

var (
	scalarRate     = sdkmath.NewInt(fixedpoint.ScalarRate)
	scalarExchange = sdkmath.NewInt(fixedpoint.ScalarExchange)

	// IRModMin lower bound of the rate modifier, 0.1x
	IRModMin = fixedpoint.ScalarRate / 10
	// IRModMax upper bound of the rate modifier, 10x
	IRModMax = fixedpoint.ScalarRate * 10
)

// Utilization borrowed value over supplied value, 7 decimals, capped at
// 100%. Zero when nothing is supplied.
func Utilization(reserve *core.ReserveData) (int64, error) {
	if !reserve.BSupply.IsPositive() {
		return 0, nil
	}

	totalSupply, err := fixedpoint.MulExchange(reserve.BSupply, reserve.BRate)
	if err != nil {
		return 0, err
	}
	if !totalSupply.IsPositive() {
		return 0, nil
	}

	totalLiabilities, err := fixedpoint.MulExchange(reserve.DSupply, reserve.DRate)
	if err != nil {
		return 0, err
	}

	if totalLiabilities.GTE(totalSupply) {
		return fixedpoint.ScalarRate, nil
	}

	util, err := fixedpoint.MulDiv(totalLiabilities, scalarRate, totalSupply)
	if err != nil {
		return 0, err
	}

	if util.GT(scalarRate) {
		return fixedpoint.ScalarRate, nil
	}
	return util.Int64(), nil
}

// InterestRate the curve value at a utilization, 7 decimals.
//
// Segments one and two are scaled by the rate modifier; the extreme
// segment above max utilization is not, so a pool running hot is never
// dampened.
func InterestRate(params *core.InterestRateParams, util, irMod int64) (sdkmath.Int, error) {
	curUtil := sdkmath.NewInt(util)
	targetUtil := sdkmath.NewInt(params.TargetUtil)
	maxUtil := sdkmath.NewInt(params.MaxUtil)
	rBase := sdkmath.NewInt(params.RBase)
	rOne := sdkmath.NewInt(params.ROne)
	rTwo := sdkmath.NewInt(params.RTwo)
	rThree := sdkmath.NewInt(params.RThree)
	mod := sdkmath.NewInt(irMod)

	switch {
	case util <= params.TargetUtil:
		// rate = (util/target)*r_one + r_base, scaled by ir_mod
		rate := rBase
		if params.TargetUtil > 0 {
			slope, err := fixedpoint.MulDiv(curUtil, rOne, targetUtil)
			if err != nil {
				return sdkmath.Int{}, err
			}
			rate, err = fixedpoint.Add(slope, rBase)
			if err != nil {
				return sdkmath.Int{}, err
			}
		}
		return fixedpoint.MulRate(rate, mod)

	case util <= params.MaxUtil:
		// rate = ((util-target)/(max-target))*r_two + r_one + r_base,
		// scaled by ir_mod
		utilDiff := curUtil.Sub(targetUtil)
		utilRange := maxUtil.Sub(targetUtil)
		rate := rOne.Add(rBase)
		if utilRange.IsPositive() {
			slope, err := fixedpoint.MulDiv(utilDiff, rTwo, utilRange)
			if err != nil {
				return sdkmath.Int{}, err
			}
			rate, err = fixedpoint.Add(slope, rate)
			if err != nil {
				return sdkmath.Int{}, err
			}
		}
		return fixedpoint.MulRate(rate, mod)

	default:
		// rate = ((util-max)/(1-max))*r_three + r_two + r_one + r_base,
		// no ir_mod
		base, err := fixedpoint.Add(rThree, rTwo)
		if err != nil {
			return sdkmath.Int{}, err
		}
		base, err = fixedpoint.Add(base, rOne)
		if err != nil {
			return sdkmath.Int{}, err
		}
		base, err = fixedpoint.Add(base, rBase)
		if err != nil {
			return sdkmath.Int{}, err
		}

		utilRange := scalarRate.Sub(maxUtil)
		if !utilRange.IsPositive() {
			return base, nil
		}

		slope, err := fixedpoint.MulDiv(curUtil.Sub(maxUtil), rThree, utilRange)
		if err != nil {
			return sdkmath.Int{}, err
		}

		// rest of the curve below the slope
		floor := base.Sub(rThree)
		return fixedpoint.Add(slope, floor)
	}
}

// CalcAccrual the multiplicative growth factor for d_rate over the
// elapsed time (12 decimals) and the next rate modifier.
func CalcAccrual(params *core.InterestRateParams, util, irMod, lastTime, now int64) (sdkmath.Int, int64, error) {
	deltaTime := now - lastTime
	if deltaTime <= 0 {
		return fixedpoint.OneExchange(), irMod, nil
	}

	interestRate, err := InterestRate(params, util, irMod)
	if err != nil {
		return sdkmath.Int{}, 0, err
	}

	// accrual = 1 + rate*delta / seconds_per_year, at 12 decimals
	numerator := sdkmath.NewInt(deltaTime).Mul(interestRate)
	increase, err := fixedpoint.MulDiv(
		numerator,
		scalarExchange,
		sdkmath.NewInt(fixedpoint.SecondsPerYear).Mul(scalarRate),
	)
	if err != nil {
		return sdkmath.Int{}, 0, err
	}

	accrual, err := fixedpoint.Add(scalarExchange, increase)
	if err != nil {
		return sdkmath.Int{}, 0, err
	}

	newIRMod, err := nextIRMod(params, util, irMod, deltaTime)
	if err != nil {
		return sdkmath.Int{}, 0, err
	}

	return accrual, newIRMod, nil
}

// nextIRMod proportional controller on the distance from target
// utilization, clamped to [0.1x, 10x]
func nextIRMod(params *core.InterestRateParams, util, irMod, deltaTime int64) (int64, error) {
	utilDiff := sdkmath.NewInt(util - params.TargetUtil)

	change, err := fixedpoint.MulDiv(
		sdkmath.NewInt(deltaTime).Mul(utilDiff),
		sdkmath.NewInt(params.Reactivity),
		scalarRate,
	)
	if err != nil {
		return 0, err
	}

	next, err := fixedpoint.Add(sdkmath.NewInt(irMod), change)
	if err != nil {
		return 0, err
	}

	if next.GT(sdkmath.NewInt(IRModMax)) {
		return IRModMax, nil
	}
	if next.LT(sdkmath.NewInt(IRModMin)) {
		return IRModMin, nil
	}
	return next.Int64(), nil
}

// ApplyAccrual grow both token rates, credit the backstop and move the
// modifier. The reserve is mutated in place; on error the caller must
// drop the document unsaved.
func ApplyAccrual(reserve *core.ReserveData, takeRate int64, accrual sdkmath.Int, newIRMod, now int64) error {
	oldDRate := reserve.DRate

	newDRate, err := fixedpoint.MulExchange(oldDRate, accrual)
	if err != nil {
		return err
	}
	reserve.DRate = newDRate

	if takeRate > 0 && reserve.DSupply.IsPositive() {
		rateIncrease, err := fixedpoint.Sub(newDRate, oldDRate)
		if err != nil {
			return err
		}

		interestEarned, err := fixedpoint.MulExchange(reserve.DSupply, rateIncrease)
		if err != nil {
			return err
		}

		credit, err := fixedpoint.MulRate(interestEarned, sdkmath.NewInt(takeRate))
		if err != nil {
			return err
		}

		reserve.BackstopCredit, err = fixedpoint.Add(reserve.BackstopCredit, credit)
		if err != nil {
			return err
		}
	}

	if reserve.BSupply.IsPositive() {
		lenderAccrual := accrual
		if takeRate > 0 {
			increase, err := fixedpoint.Sub(accrual, scalarExchange)
			if err != nil {
				return err
			}

			lenderShare, err := fixedpoint.MulRate(increase, sdkmath.NewInt(fixedpoint.ScalarRate-takeRate))
			if err != nil {
				return err
			}

			lenderAccrual, err = fixedpoint.Add(scalarExchange, lenderShare)
			if err != nil {
				return err
			}
		}

		newBRate, err := fixedpoint.MulExchange(reserve.BRate, lenderAccrual)
		if err != nil {
			return err
		}
		reserve.BRate = newBRate
	}

	reserve.IRMod = newIRMod
	reserve.LastTime = now

	return nil
}

// Accrue run one full accrual step against a reserve: utilization, growth
// factor, modifier update and in place application.
//
// No supply or no borrowing means no accrual: only the clock advances,
// rates and the modifier stay put.
func Accrue(reserve *core.ReserveData, params *core.InterestRateParams, takeRate, now int64) error {
	if now <= reserve.LastTime {
		return nil
	}

	if !reserve.BSupply.IsPositive() {
		reserve.LastTime = now
		return nil
	}

	util, err := Utilization(reserve)
	if err != nil {
		return err
	}

	if util == 0 {
		reserve.LastTime = now
		return nil
	}

	accrual, newIRMod, err := CalcAccrual(params, util, reserve.IRMod, reserve.LastTime, now)
	if err != nil {
		return err
	}

	return ApplyAccrual(reserve, takeRate, accrual, newIRMod, now)
}

// AnnualRate the current annualized borrow rate, 7 decimals
func AnnualRate(params *core.InterestRateParams, reserve *core.ReserveData) (int64, error) {
	util, err := Utilization(reserve)
	if err != nil {
		return 0, err
	}

	r, err := InterestRate(params, util, reserve.IRMod)
	if err != nil {
		return 0, err
	}
	if !r.IsInt64() {
		return 0, core.ErrArithmetic
	}

	return r.Int64(), nil
}
