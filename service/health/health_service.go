package health

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
)

type healthService struct {
	oracleService core.IOracleService
}

// New new health service
func New(oracleService core.IOracleService) core.IHealthService {
	return &healthService{
		oracleService: oracleService,
	}
}

// HealthFactor risk adjusted collateral value over debt value.
//
// Both sides are valued through the oracle at 7 decimals; a position
// without debt saturates at the max value.
func (s *healthService) HealthFactor(ctx context.Context, pool *core.PoolState, cdp *core.CDP) (uint32, error) {
	debtValue, err := s.DebtValue(ctx, pool, cdp)
	if err != nil {
		return 0, err
	}

	if !debtValue.IsPositive() {
		return core.MaxHealthFactorValue, nil
	}

	collateralValue, err := s.CollateralValue(ctx, pool, cdp)
	if err != nil {
		return 0, err
	}

	hf, err := fixedpoint.DivRate(collateralValue, debtValue)
	if err != nil {
		return 0, err
	}

	max := sdkmath.NewInt(int64(core.MaxHealthFactorValue))
	if hf.GT(max) {
		return core.MaxHealthFactorValue, nil
	}
	if hf.IsNegative() {
		return 0, nil
	}

	return uint32(hf.Int64()), nil
}

func (s *healthService) CollateralValue(ctx context.Context, pool *core.PoolState, cdp *core.CDP) (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()

	for token, amount := range cdp.Collateral {
		if !amount.IsPositive() {
			continue
		}

		value, err := s.tokenValue(ctx, token, amount)
		if err != nil {
			return sdkmath.Int{}, err
		}

		factored, err := fixedpoint.MulRate(value, sdkmath.NewInt(pool.CollateralFactor(token)))
		if err != nil {
			return sdkmath.Int{}, err
		}

		total, err = fixedpoint.Add(total, factored)
		if err != nil {
			return sdkmath.Int{}, err
		}
	}

	return total, nil
}

func (s *healthService) RawCollateralValue(ctx context.Context, pool *core.PoolState, cdp *core.CDP) (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()

	for token, amount := range cdp.Collateral {
		if !amount.IsPositive() {
			continue
		}

		value, err := s.tokenValue(ctx, token, amount)
		if err != nil {
			return sdkmath.Int{}, err
		}

		total, err = fixedpoint.Add(total, value)
		if err != nil {
			return sdkmath.Int{}, err
		}
	}

	return total, nil
}

// DebtValue oracle value of the debt, quoted with the ceiling conversion
// so a borrower can never look healthier than they are.
func (s *healthService) DebtValue(ctx context.Context, pool *core.PoolState, cdp *core.CDP) (sdkmath.Int, error) {
	if cdp.DebtAsset == "" || !cdp.DTokens.IsPositive() {
		return sdkmath.ZeroInt(), nil
	}

	reserve, ok := pool.Reserves[cdp.DebtAsset]
	if !ok {
		return sdkmath.Int{}, core.ErrReserveNotFound
	}

	debtAmount, err := fixedpoint.FromDTokenUp(cdp.DTokens, reserve.DRate)
	if err != nil {
		return sdkmath.Int{}, err
	}

	return s.tokenValue(ctx, cdp.DebtAsset, debtAmount)
}

func (s *healthService) tokenValue(ctx context.Context, symbol string, amount sdkmath.Int) (sdkmath.Int, error) {
	price, err := s.oracleService.GetPrice(ctx, symbol)
	if err != nil {
		return sdkmath.Int{}, err
	}

	return fixedpoint.MulRate(amount, price.Price)
}
