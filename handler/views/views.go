package views

import (
	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"

	"rwapool/core"
)

// Amount format a 7 decimal fixed point integer as a decimal
func Amount(v sdkmath.Int) decimal.Decimal {
	if v.IsNil() {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v.BigInt(), -7)
}

// Rate format a 7 decimal rate as a decimal
func Rate(v int64) decimal.Decimal {
	return decimal.New(v, -7)
}

// ExchangeRate format a 12 decimal exchange rate as a decimal
func ExchangeRate(v sdkmath.Int) decimal.Decimal {
	if v.IsNil() {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v.BigInt(), -12)
}

// Pool pool summary view
type Pool struct {
	Status            string                     `json:"status"`
	Balances          map[string]decimal.Decimal `json:"balances"`
	BackstopTotal     decimal.Decimal            `json:"backstop_total"`
	BackstopThreshold decimal.Decimal            `json:"backstop_threshold"`
	BackstopTakeRate  decimal.Decimal            `json:"backstop_take_rate"`
	BackstopToken     string                     `json:"backstop_token,omitempty"`
	Admin             string                     `json:"admin"`
	OpenAuctions      int                        `json:"open_auctions"`
}

// Reserve per asset reserve view
type Reserve struct {
	Asset          string          `json:"asset"`
	BRate          decimal.Decimal `json:"b_rate"`
	DRate          decimal.Decimal `json:"d_rate"`
	IRMod          decimal.Decimal `json:"ir_mod"`
	BSupply        decimal.Decimal `json:"b_supply"`
	DSupply        decimal.Decimal `json:"d_supply"`
	BackstopCredit decimal.Decimal `json:"backstop_credit"`
	Utilization    decimal.Decimal `json:"utilization"`
	BorrowRate     decimal.Decimal `json:"borrow_rate"`
	LastTime       int64           `json:"last_time"`
}

// CDP borrower position view
type CDP struct {
	UserID       string                     `json:"user_id"`
	Collateral   map[string]decimal.Decimal `json:"collateral"`
	DebtAsset    string                     `json:"debt_asset,omitempty"`
	DTokens      decimal.Decimal            `json:"d_tokens"`
	HealthFactor decimal.Decimal            `json:"health_factor"`
	LastUpdate   int64                      `json:"last_update"`
}

// Auction live auction view
type Auction struct {
	ID          uint32                     `json:"id"`
	Type        string                     `json:"type"`
	User        string                     `json:"user"`
	Bid         map[string]decimal.Decimal `json:"bid"`
	Lot         map[string]decimal.Decimal `json:"lot"`
	Block       int64                      `json:"block"`
	LotModifier decimal.Decimal            `json:"lot_modifier"`
	BidModifier decimal.Decimal            `json:"bid_modifier"`
}

func poolStatus(status core.PoolStatus) string {
	switch status {
	case core.PoolStatusActive:
		return "active"
	case core.PoolStatusOnIce:
		return "on_ice"
	case core.PoolStatusFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

func auctionType(typ core.AuctionType) string {
	switch typ {
	case core.AuctionTypeUserLiquidation:
		return "user_liquidation"
	case core.AuctionTypeBadDebt:
		return "bad_debt"
	case core.AuctionTypeInterest:
		return "interest"
	default:
		return "unknown"
	}
}

// NewPool build the pool summary view
func NewPool(pool *core.PoolState) *Pool {
	balances := make(map[string]decimal.Decimal, len(pool.PoolBalances))
	for asset, amount := range pool.PoolBalances {
		balances[asset] = Amount(amount)
	}

	return &Pool{
		Status:            poolStatus(pool.Status),
		Balances:          balances,
		BackstopTotal:     Amount(pool.BackstopTotal),
		BackstopThreshold: Amount(pool.BackstopThreshold),
		BackstopTakeRate:  Rate(pool.BackstopTakeRate),
		BackstopToken:     pool.BackstopToken,
		Admin:             pool.Admin,
		OpenAuctions:      len(pool.Auctions),
	}
}

// NewReserve build a reserve view
func NewReserve(asset string, reserve *core.ReserveData, utilization, borrowRate int64) *Reserve {
	return &Reserve{
		Asset:          asset,
		BRate:          ExchangeRate(reserve.BRate),
		DRate:          ExchangeRate(reserve.DRate),
		IRMod:          Rate(reserve.IRMod),
		BSupply:        Amount(reserve.BSupply),
		DSupply:        Amount(reserve.DSupply),
		BackstopCredit: Amount(reserve.BackstopCredit),
		Utilization:    Rate(utilization),
		BorrowRate:     Rate(borrowRate),
		LastTime:       reserve.LastTime,
	}
}

// NewCDP build a position view
func NewCDP(cdp *core.CDP, healthFactor uint32) *CDP {
	collateral := make(map[string]decimal.Decimal, len(cdp.Collateral))
	for token, amount := range cdp.Collateral {
		collateral[token] = Amount(amount)
	}

	return &CDP{
		UserID:       cdp.UserID,
		Collateral:   collateral,
		DebtAsset:    cdp.DebtAsset,
		DTokens:      Amount(cdp.DTokens),
		HealthFactor: Rate(int64(healthFactor)),
		LastUpdate:   cdp.LastUpdate,
	}
}

// NewAuction build an auction view with its current modifiers
func NewAuction(id uint32, auction *core.AuctionData, lotModifier, bidModifier sdkmath.Int) *Auction {
	bid := make(map[string]decimal.Decimal, len(auction.Bid))
	for asset, amount := range auction.Bid {
		bid[asset] = Amount(amount)
	}

	lot := make(map[string]decimal.Decimal, len(auction.Lot))
	for asset, amount := range auction.Lot {
		lot[asset] = Amount(amount)
	}

	return &Auction{
		ID:          id,
		Type:        auctionType(auction.Type),
		User:        auction.User,
		Bid:         bid,
		Lot:         lot,
		Block:       auction.Block,
		LotModifier: ExchangeRate(lotModifier),
		BidModifier: ExchangeRate(bidModifier),
	}
}
