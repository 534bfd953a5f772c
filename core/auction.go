package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// AuctionType auction kind
type AuctionType int

const (
	// AuctionTypeUserLiquidation liquidate an unhealthy position
	AuctionTypeUserLiquidation AuctionType = iota
	// AuctionTypeBadDebt auction the backstop against uncovered debt
	AuctionTypeBadDebt
	// AuctionTypeInterest distribute accrued interest to backstop holders
	AuctionTypeInterest
)

const (
	// AuctionDurationBlocks duration of the lot ramp for liquidation and
	// interest auctions; liquidation bids decay over a second window of
	// the same length
	AuctionDurationBlocks int64 = 200
	// BadDebtAuctionDurationBlocks duration of bad debt auctions
	BadDebtAuctionDurationBlocks int64 = 400

	// AuctionIDOffsetBadDebt id offsets keep the three kinds from
	// colliding on the same block and timestamp
	AuctionIDOffsetBadDebt uint32 = 0
	// AuctionIDOffsetInterest interest auction id offset
	AuctionIDOffsetInterest uint32 = 1000
	// AuctionIDOffsetLiquidation liquidation auction id offset
	AuctionIDOffsetLiquidation uint32 = 2000
)

// MinInterestAuctionAmount minimum backstop credit before an interest
// auction may start: 100 units at 7 decimals
var MinInterestAuctionAmount = sdkmath.NewInt(100_0000000)

// AuctionData one Dutch auction, the shape is shared by all three kinds.
//
// Bid is what the filler pays, lot is what the filler receives, both keyed
// by token symbol. Block is the ledger sequence the auction started at.
type AuctionData struct {
	Type AuctionType `json:"type"`
	// User the borrower under liquidation, or the pool itself for
	// interest auctions
	User  string                 `json:"user"`
	Bid   map[string]sdkmath.Int `json:"bid"`
	Lot   map[string]sdkmath.Int `json:"lot"`
	Block int64                  `json:"block"`
}

// ILiquidationService user liquidation auctions
type ILiquidationService interface {
	// Initiate open a liquidation auction against an insolvent borrower.
	// liquidationPercent is the caller-chosen share of the debt, 7 decimals.
	Initiate(ctx context.Context, borrower, collateralToken, debtAsset string, liquidationPercent int64) (uint32, error)
	// Fill settle the auction at the current block's modifiers
	Fill(ctx context.Context, auctionID uint32, liquidator string) error
}

// IBadDebtService bad debt auctions
type IBadDebtService interface {
	Create(ctx context.Context, borrower, debtAsset string) (uint32, error)
	// Fill cover bad debt; amount is the bidder's offer in the debt asset
	Fill(ctx context.Context, auctionID uint32, bidder string, amount sdkmath.Int) (sdkmath.Int, error)
}

// IInterestAuctionService protocol interest auctions
type IInterestAuctionService interface {
	Create(ctx context.Context, asset string) (uint32, error)
	// Fill the only partial-fill path; fillPercent in (0, 1] at 7 decimals
	Fill(ctx context.Context, auctionID uint32, bidder, asset string, fillPercent int64) (sdkmath.Int, sdkmath.Int, error)
}
