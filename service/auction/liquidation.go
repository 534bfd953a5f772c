package auction

import (
	"context"
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/internal/rate"
	"rwapool/pkg/fixedpoint"
	"rwapool/pkg/id"
)

type liquidationPayload struct {
	AuctionID  uint32 `json:"auction_id"`
	Borrower   string `json:"borrower,omitempty"`
	Liquidator string `json:"liquidator,omitempty"`
	Collateral string `json:"collateral"`
	Debt       string `json:"debt"`
}

// initiateLiquidation open a liquidation auction against an insolvent
// borrower.
//
// The debt leg is the caller chosen share of the outstanding debt; the
// collateral leg is sized with the liquidation premium so riskier
// collateral pays liquidators more.
func (s *Service) initiateLiquidation(ctx context.Context, borrower, collateralToken, debtAsset string, liquidationPercent int64) (uint32, error) {
	if liquidationPercent <= 0 || liquidationPercent > fixedpoint.ScalarRate {
		return 0, core.ErrInvalidFillPercent
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return 0, err
	}

	cdp, err := s.cdpStore.Find(ctx, borrower)
	if err != nil {
		return 0, err
	}
	if cdp == nil {
		return 0, core.ErrCDPNotFound
	}

	if cdp.DebtAsset != debtAsset {
		return 0, core.ErrDebtAssetMismatch
	}

	now := time.Now().Unix()
	reserve := pool.Reserve(debtAsset, now)
	if err := rate.Accrue(reserve, pool.Params(debtAsset), pool.BackstopTakeRate, now); err != nil {
		return 0, err
	}

	hf, err := s.healthService.HealthFactor(ctx, pool, cdp)
	if err != nil {
		return 0, err
	}
	if int64(hf) >= core.HealthFactorOne {
		return 0, core.ErrCDPNotInsolvent
	}

	collateralAmount := cdp.CollateralAmount(collateralToken)
	if !collateralAmount.IsPositive() {
		return 0, core.ErrInsufficientCollateral
	}

	if _, ok := pool.TokenContracts[debtAsset]; !ok {
		return 0, core.ErrTokenContractNotSet
	}

	debtAmount, err := fixedpoint.FromDToken(cdp.DTokens, reserve.DRate)
	if err != nil {
		return 0, err
	}

	liquidationDebt, err := fixedpoint.MulRate(debtAmount, sdkmath.NewInt(liquidationPercent))
	if err != nil {
		return 0, err
	}

	collateralPrice, err := s.oracleService.GetPrice(ctx, collateralToken)
	if err != nil {
		return 0, err
	}
	collateralValue, err := fixedpoint.MulRate(collateralAmount, collateralPrice.Price)
	if err != nil {
		return 0, err
	}
	if !collateralValue.IsPositive() {
		return 0, core.ErrInvalidPrice
	}

	debtPrice, err := s.oracleService.GetPrice(ctx, debtAsset)
	if err != nil {
		return 0, err
	}
	debtValue, err := fixedpoint.MulRate(debtAmount, debtPrice.Price)
	if err != nil {
		return 0, err
	}

	percent, err := collateralPercent(pool.CollateralFactor(collateralToken), liquidationPercent, debtValue, collateralValue)
	if err != nil {
		return 0, err
	}

	liquidationCollateral, err := fixedpoint.MulRate(collateralAmount, sdkmath.NewInt(percent))
	if err != nil {
		return 0, err
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return 0, err
	}

	auctionID := id.AuctionID(block, now, core.AuctionIDOffsetLiquidation)
	pool.Auctions[auctionID] = &core.AuctionData{
		Type:  core.AuctionTypeUserLiquidation,
		User:  borrower,
		Bid:   map[string]sdkmath.Int{debtAsset: liquidationDebt},
		Lot:   map[string]sdkmath.Int{collateralToken: liquidationCollateral},
		Block: block,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeLiquidationInitiated, borrower, debtAsset, &liquidationPayload{
			AuctionID:  auctionID,
			Borrower:   borrower,
			Collateral: liquidationCollateral.String(),
			Debt:       liquidationDebt.String(),
		})
	}); err != nil {
		return 0, err
	}

	return auctionID, nil
}

// fillLiquidation settle a liquidation at the current block's modifiers.
//
// The fill fails whole when it would push the borrower's health factor
// above the repair ceiling; partial liquidations must be sized accordingly.
func (s *Service) fillLiquidation(ctx context.Context, auctionID uint32, liquidator string) error {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return err
	}

	auction, ok := pool.Auctions[auctionID]
	if !ok {
		return core.ErrAuctionNotFound
	}
	if auction.Type != core.AuctionTypeUserLiquidation {
		return core.ErrAuctionNotActive
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	lotMod, bidMod := Modifiers(auction.Type, block-auction.Block)

	collateralToken, lotAmount, ok := singleEntry(auction.Lot)
	if !ok {
		return core.ErrAuctionNotActive
	}
	debtAsset, bidAmount, ok := singleEntry(auction.Bid)
	if !ok {
		return core.ErrAuctionNotActive
	}

	collateralReceived, err := fixedpoint.MulExchange(lotAmount, lotMod)
	if err != nil {
		return err
	}
	debtToPay, err := fixedpoint.MulExchange(bidAmount, bidMod)
	if err != nil {
		return err
	}

	cdp, err := s.cdpStore.Find(ctx, auction.User)
	if err != nil {
		return err
	}
	if cdp == nil {
		return core.ErrCDPNotFound
	}
	if cdp.DebtAsset == "" {
		return core.ErrDebtAssetNotSet
	}

	reserve, ok := pool.Reserves[cdp.DebtAsset]
	if !ok {
		return core.ErrReserveNotFound
	}

	dTokensToBurn, err := fixedpoint.ToDTokenDown(debtToPay, reserve.DRate)
	if err != nil {
		return err
	}
	if dTokensToBurn.GT(cdp.DTokens) {
		dTokensToBurn = cdp.DTokens
	}

	now := time.Now().Unix()

	cdp.DTokens, err = fixedpoint.Sub(cdp.DTokens, dTokensToBurn)
	if err != nil {
		return err
	}
	if !cdp.DTokens.IsPositive() {
		cdp.DebtAsset = ""
	}
	cdp.LastUpdate = now

	reserve.DSupply, err = fixedpoint.Sub(reserve.DSupply, dTokensToBurn)
	if err != nil {
		return err
	}
	if reserve.DSupply.IsNegative() {
		reserve.DSupply = sdkmath.ZeroInt()
	}

	held, err := fixedpoint.Sub(cdp.CollateralAmount(collateralToken), collateralReceived)
	if err != nil {
		return err
	}
	if held.IsNegative() {
		return core.ErrInsufficientCollateral
	}
	cdp.Collateral[collateralToken] = held

	balance, err := fixedpoint.Add(pool.Balance(debtAsset), debtToPay)
	if err != nil {
		return err
	}
	pool.PoolBalances[debtAsset] = balance

	hf, err := s.healthService.HealthFactor(ctx, pool, cdp)
	if err != nil {
		return err
	}
	if int64(hf) > core.MaxHealthFactor {
		return core.ErrHealthFactorTooHigh
	}

	delete(pool.Auctions, auctionID)

	return s.db.Tx(func(tx *db.DB) error {
		if debtToPay.IsPositive() {
			if err := s.transferService.Transfer(ctx, tx, liquidator, core.PoolAccount, debtAsset, debtToPay, "liquidation_fill"); err != nil {
				return err
			}
		}
		if collateralReceived.IsPositive() {
			if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, liquidator, collateralToken, collateralReceived, "liquidation_fill"); err != nil {
				return err
			}
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeLiquidationFilled, liquidator, debtAsset, &liquidationPayload{
			AuctionID:  auctionID,
			Liquidator: liquidator,
			Collateral: collateralReceived.String(),
			Debt:       debtToPay.String(),
		})
	})
}

// collateralPercent share of the borrower's collateral to auction, capped
// at 100%: premium * liquidationPercent * debtValue / collateralValue
func collateralPercent(collateralFactor, liquidationPercent int64, debtValue, collateralValue sdkmath.Int) (int64, error) {
	// premium p = 1 + (1 - cf*lf)/2 with lf = 1.0
	premium := (fixedpoint.ScalarRate-collateralFactor)/2 + fixedpoint.ScalarRate

	scaled, err := fixedpoint.MulDiv(
		sdkmath.NewInt(premium).Mul(sdkmath.NewInt(liquidationPercent)),
		debtValue,
		collateralValue,
	)
	if err != nil {
		return 0, err
	}

	percent := scaled.Quo(sdkmath.NewInt(fixedpoint.ScalarRate))
	if percent.GT(sdkmath.NewInt(fixedpoint.ScalarRate)) {
		return fixedpoint.ScalarRate, nil
	}
	if percent.IsNegative() {
		return 0, nil
	}
	return percent.Int64(), nil
}

func (s *Service) createEvent(ctx context.Context, tx *db.DB, typ core.EventType, user, asset string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.eventStore.Create(ctx, tx, &core.Event{
		TraceID: id.GenTraceID(),
		Type:    typ,
		User:    user,
		Asset:   asset,
		Payload: string(raw),
	})
}
