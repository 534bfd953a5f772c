// Package fixedpoint implements checked fixed point arithmetic at the two
// scales the pool runs on: 7 decimals for rates, utilization and health
// factors, 12 decimals for share token exchange rates.
//
// Every operation bounds its result to the signed 128 bit range and returns
// core.ErrArithmetic instead of wrapping; division by zero is rejected
// explicitly. Conversions between underlying amounts and share tokens pick
// the rounding direction that favors the protocol.
package fixedpoint

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
	"rwapool/core"
)

// The scales live in core next to the types they describe; the aliases
// keep call sites on this package for all arithmetic concerns.
const (
	// ScalarRate 7 decimals: 75% = 7_500_000
	ScalarRate = core.ScalarRate
	// ScalarExchange 12 decimals: a 1:1 exchange rate = 10^12
	ScalarExchange = core.ScalarExchange
	// SecondsPerYear 365 days
	SecondsPerYear = core.SecondsPerYear
)

var (
	scalarRate     = sdkmath.NewInt(ScalarRate)
	scalarExchange = sdkmath.NewInt(ScalarExchange)

	maxInt128 = sdkmath.NewIntFromBigInt(new(big.Int).Sub(
		new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)))
)

// OneRate 1.0 at rate scale
func OneRate() sdkmath.Int { return scalarRate }

// OneExchange 1.0 at exchange rate scale
func OneExchange() sdkmath.Int { return scalarExchange }

func fits(v sdkmath.Int) bool {
	return v.Abs().LTE(maxInt128)
}

func check(v sdkmath.Int) (sdkmath.Int, error) {
	if !fits(v) {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	return v, nil
}

// MulDiv floor(a*b/den)
func MulDiv(a, b, den sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNil() || b.IsNil() || den.IsNil() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	if !fits(a) || !fits(b) {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	if den.IsZero() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	return check(a.Mul(b).Quo(den))
}

// MulDivUp ceil(a*b/den); a, b and den must be non-negative
func MulDivUp(a, b, den sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNil() || b.IsNil() || den.IsNil() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	if !fits(a) || !fits(b) {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	if !den.IsPositive() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	if a.IsNegative() || b.IsNegative() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	num := a.Mul(b).Add(den).Sub(sdkmath.OneInt())
	return check(num.Quo(den))
}

// MulRate floor(a*b/1e7)
func MulRate(a, b sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(a, b, scalarRate)
}

// DivRate floor(a*1e7/b)
func DivRate(a, b sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(a, scalarRate, b)
}

// MulExchange floor(a*b/1e12)
func MulExchange(a, b sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(a, b, scalarExchange)
}

// DivExchange floor(a*1e12/b)
func DivExchange(a, b sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(a, scalarExchange, b)
}

// ToBTokenDown underlying -> bTokens, floor. Used on deposit: mints fewer
// shares.
func ToBTokenDown(amount, bRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(amount, scalarExchange, bRate)
}

// ToBTokenUp underlying -> bTokens, ceil. Used on withdraw: burns more
// shares.
func ToBTokenUp(amount, bRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDivUp(amount, scalarExchange, bRate)
}

// FromBToken bTokens -> underlying, floor
func FromBToken(bTokens, bRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(bTokens, bRate, scalarExchange)
}

// ToDTokenUp underlying -> dTokens, ceil. Used on borrow: mints more debt
// shares.
func ToDTokenUp(amount, dRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDivUp(amount, scalarExchange, dRate)
}

// ToDTokenDown underlying -> dTokens, floor. Used on repay: burns fewer
// debt shares.
func ToDTokenDown(amount, dRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(amount, scalarExchange, dRate)
}

// FromDToken dTokens -> underlying, floor
func FromDToken(dTokens, dRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDiv(dTokens, dRate, scalarExchange)
}

// FromDTokenUp dTokens -> underlying, ceil. Used when quoting the total
// debt owed.
func FromDTokenUp(dTokens, dRate sdkmath.Int) (sdkmath.Int, error) {
	return MulDivUp(dTokens, dRate, scalarExchange)
}

// Add checked a+b
func Add(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNil() || b.IsNil() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	return check(a.Add(b))
}

// Sub checked a-b
func Sub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNil() || b.IsNil() {
		return sdkmath.Int{}, core.ErrArithmetic
	}
	return check(a.Sub(b))
}

// Clamp bound v to [lo, hi]
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
