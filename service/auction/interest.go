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

type interestPayload struct {
	AuctionID      uint32 `json:"auction_id"`
	Bidder         string `json:"bidder,omitempty"`
	Interest       string `json:"interest"`
	BackstopTokens string `json:"backstop_tokens,omitempty"`
}

// createInterest auction off a reserve's accumulated backstop credit.
//
// The lot snapshots the credit at creation; fills drain both the lot and
// the live credit.
func (s *Service) createInterest(ctx context.Context, asset string) (uint32, error) {
	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return 0, err
	}

	reserve, ok := pool.Reserves[asset]
	if !ok {
		return 0, core.ErrReserveNotFound
	}

	if reserve.BackstopCredit.LT(core.MinInterestAuctionAmount) {
		return 0, core.ErrAuctionNotActive
	}

	if _, ok := pool.TokenContracts[asset]; !ok {
		return 0, core.ErrTokenContractNotSet
	}

	now := time.Now().Unix()
	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return 0, err
	}

	auctionID := id.AuctionID(block, now, core.AuctionIDOffsetInterest)
	pool.Auctions[auctionID] = &core.AuctionData{
		Type:  core.AuctionTypeInterest,
		User:  core.PoolAccount,
		Bid:   map[string]sdkmath.Int{},
		Lot:   map[string]sdkmath.Int{asset: reserve.BackstopCredit},
		Block: block,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeInterestAuctionCreated, core.PoolAccount, asset, &interestPayload{
			AuctionID: auctionID,
			Interest:  reserve.BackstopCredit.String(),
		})
	}); err != nil {
		return 0, err
	}

	return auctionID, nil
}

// fillInterest trade backstop tokens for a share of the auctioned
// interest; the only partial fill path.
//
// Returns the interest paid out and the backstop tokens collected.
func (s *Service) fillInterest(ctx context.Context, auctionID uint32, bidder, asset string, fillPercent int64) (sdkmath.Int, sdkmath.Int, error) {
	if fillPercent <= 0 || fillPercent > fixedpoint.ScalarRate {
		return sdkmath.Int{}, sdkmath.Int{}, core.ErrInvalidFillPercent
	}

	pool, err := s.poolStore.Load(ctx)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	auction, ok := pool.Auctions[auctionID]
	if !ok {
		return sdkmath.Int{}, sdkmath.Int{}, core.ErrAuctionNotFound
	}
	if auction.Type != core.AuctionTypeInterest {
		return sdkmath.Int{}, sdkmath.Int{}, core.ErrAuctionNotActive
	}

	totalInterest, ok := auction.Lot[asset]
	if !ok || !totalInterest.IsPositive() {
		return sdkmath.Int{}, sdkmath.Int{}, core.ErrAuctionNotActive
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	lotMod, bidMod := Modifiers(auction.Type, block-auction.Block)

	share, err := fixedpoint.MulRate(totalInterest, sdkmath.NewInt(fillPercent))
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	interestToReceive, err := fixedpoint.MulExchange(share, lotMod)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	backstopToPay, err := fixedpoint.MulExchange(interestToReceive, bidMod)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	if backstopToPay.IsPositive() {
		pool.BackstopTotal, err = fixedpoint.Add(pool.BackstopTotal, backstopToPay)
		if err != nil {
			return sdkmath.Int{}, sdkmath.Int{}, err
		}
	}

	if interestToReceive.IsPositive() {
		reserve, ok := pool.Reserves[asset]
		if !ok {
			return sdkmath.Int{}, sdkmath.Int{}, core.ErrReserveNotFound
		}

		reserve.BackstopCredit, err = fixedpoint.Sub(reserve.BackstopCredit, interestToReceive)
		if err != nil {
			return sdkmath.Int{}, sdkmath.Int{}, err
		}
		if reserve.BackstopCredit.IsNegative() {
			reserve.BackstopCredit = sdkmath.ZeroInt()
		}
	}

	remaining, err := fixedpoint.Sub(totalInterest, interestToReceive)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if remaining.IsPositive() {
		auction.Lot[asset] = remaining
	} else {
		delete(pool.Auctions, auctionID)
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if backstopToPay.IsPositive() && pool.BackstopToken != "" {
			if err := s.transferService.Transfer(ctx, tx, bidder, core.PoolAccount, pool.BackstopToken, backstopToPay, "interest_fill"); err != nil {
				return err
			}
		}
		if interestToReceive.IsPositive() {
			if err := s.transferService.Transfer(ctx, tx, core.PoolAccount, bidder, asset, interestToReceive, "interest_fill"); err != nil {
				return err
			}
		}

		if err := s.poolStore.Save(ctx, tx, pool); err != nil {
			return err
		}

		return s.createEvent(ctx, tx, core.EventTypeInterestAuctionFilled, bidder, asset, &interestPayload{
			AuctionID:      auctionID,
			Bidder:         bidder,
			Interest:       interestToReceive.String(),
			BackstopTokens: backstopToPay.String(),
		})
	}); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	return interestToReceive, backstopToPay, nil
}
