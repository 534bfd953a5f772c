package auction

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
	"rwapool/pkg/id"
)

type badDebtPayload struct {
	AuctionID      uint32 `json:"auction_id"`
	Borrower       string `json:"borrower,omitempty"`
	Bidder         string `json:"bidder,omitempty"`
	Debt           string `json:"debt"`
	BackstopTokens string `json:"backstop_tokens,omitempty"`
}

// createBadDebt open a bad debt auction against a fully liquidated
// borrower who still owes.
//
// Positions with any collateral left go through a regular liquidation
// instead; the gating never produces an empty auction.
func (s *Service) createBadDebt(ctx context.Context, borrower, debtAsset string) (uint32, error) {
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
	if !cdp.DTokens.IsPositive() {
		return 0, core.ErrAuctionNotActive
	}
	if cdp.TotalCollateral().IsPositive() {
		return 0, core.ErrCDPNotInsolvent
	}

	reserve, ok := pool.Reserves[debtAsset]
	if !ok {
		return 0, core.ErrReserveNotFound
	}

	debtAmount, err := fixedpoint.FromDToken(cdp.DTokens, reserve.DRate)
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return 0, err
	}

	auctionID := id.AuctionID(block, now, core.AuctionIDOffsetBadDebt)
	pool.Auctions[auctionID] = &core.AuctionData{
		Type:  core.AuctionTypeBadDebt,
		User:  borrower,
		Bid:   map[string]sdkmath.Int{debtAsset: debtAmount},
		Lot:   map[string]sdkmath.Int{},
		Block: block,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBadDebtAuctionCreated, borrower, debtAsset, &badDebtPayload{
			AuctionID: auctionID,
			Borrower:  borrower,
			Debt:      debtAmount.String(),
		})
	}); err != nil {
		return 0, err
	}

	return auctionID, nil
}

// fillBadDebt cover bad debt with the debt asset in exchange for backstop
// tokens.
//
// The bid modifier discounts the debt actually covered, the lot modifier
// scales the backstop tokens handed out; the two cross at the half way
// point of the ramp. Returns the backstop tokens paid to the bidder.
func (s *Service) fillBadDebt(ctx context.Context, auctionID uint32, bidder string, amount sdkmath.Int) (sdkmath.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkmath.Int{}, core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	auction, ok := pool.Auctions[auctionID]
	if !ok {
		return sdkmath.Int{}, core.ErrAuctionNotFound
	}
	if auction.Type != core.AuctionTypeBadDebt {
		return sdkmath.Int{}, core.ErrAuctionNotActive
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}

	lotMod, bidMod := Modifiers(auction.Type, block-auction.Block)

	backstopTokens, err := fixedpoint.MulExchange(amount, lotMod)
	if err != nil {
		return sdkmath.Int{}, err
	}
	debtToCover, err := fixedpoint.MulExchange(amount, bidMod)
	if err != nil {
		return sdkmath.Int{}, err
	}

	cdp, err := s.cdpStore.Find(ctx, auction.User)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if cdp == nil {
		return sdkmath.Int{}, core.ErrCDPNotFound
	}
	if cdp.DebtAsset == "" {
		return sdkmath.Int{}, core.ErrDebtAssetNotSet
	}

	debtAsset := cdp.DebtAsset
	reserve, ok := pool.Reserves[debtAsset]
	if !ok {
		return sdkmath.Int{}, core.ErrReserveNotFound
	}

	dTokensToBurn, err := fixedpoint.ToDTokenDown(debtToCover, reserve.DRate)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if dTokensToBurn.GT(cdp.DTokens) {
		dTokensToBurn = cdp.DTokens
	}

	now := time.Now().Unix()

	cdp.DTokens, err = fixedpoint.Sub(cdp.DTokens, dTokensToBurn)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !cdp.DTokens.IsPositive() {
		cdp.DebtAsset = ""
	}
	cdp.LastUpdate = now

	reserve.DSupply, err = fixedpoint.Sub(reserve.DSupply, dTokensToBurn)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if reserve.DSupply.IsNegative() {
		reserve.DSupply = sdkmath.ZeroInt()
	}

	if backstopTokens.IsPositive() {
		if backstopTokens.GT(pool.BackstopTotal) {
			backstopTokens = pool.BackstopTotal
		}
		pool.BackstopTotal, err = fixedpoint.Sub(pool.BackstopTotal, backstopTokens)
		if err != nil {
			return sdkmath.Int{}, err
		}
	}

	if debtToCover.IsPositive() {
		balance, err := fixedpoint.Add(pool.Balance(debtAsset), debtToCover)
		if err != nil {
			return sdkmath.Int{}, err
		}
		pool.PoolBalances[debtAsset] = balance
	}

	if !cdp.DTokens.IsPositive() {
		delete(pool.Auctions, auctionID)
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if debtToCover.IsPositive() {
			if err := s.transferService.Transfer(ctx, tx, bidder, core.PoolAccount, debtAsset, debtToCover, "bad_debt_fill"); err != nil {
				return err
			}
		}
		if backstopTokens.IsPositive() && pool.BackstopToken != "" {
			if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, bidder, pool.BackstopToken, backstopTokens, "bad_debt_fill"); err != nil {
				return err
			}
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.cdpStore.Save(ctx, tx, cdp); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeBadDebtAuctionFilled, bidder, debtAsset, &badDebtPayload{
			AuctionID:      auctionID,
			Bidder:         bidder,
			Debt:           debtToCover.String(),
			BackstopTokens: backstopTokens.String(),
		})
	}); err != nil {
		return sdkmath.Int{}, err
	}

	return backstopTokens, nil
}
