package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
)

// CDP one borrower's collateralized debt position.
//
// A position borrows a single debt asset at a time: DebtAsset is set iff
// DTokens is positive.
type CDP struct {
	// UserID borrower address
	UserID string `json:"user_id"`
	// Collateral collateral token symbol -> amount
	Collateral map[string]sdkmath.Int `json:"collateral"`
	// DebtAsset symbol of the borrowed asset, empty when debt is zero
	DebtAsset string `json:"debt_asset,omitempty"`
	// DTokens share tokens of the borrowed asset
	DTokens sdkmath.Int `json:"d_tokens"`
	// CreatedAt creation timestamp, unix seconds
	CreatedAt int64 `json:"created_at"`
	// LastUpdate last mutation timestamp, unix seconds
	LastUpdate int64 `json:"last_update"`

	Version int64 `json:"-"`
}

// NewCDP empty position
func NewCDP(user string, now int64) *CDP {
	return &CDP{
		UserID:     user,
		Collateral: map[string]sdkmath.Int{},
		DTokens:    sdkmath.ZeroInt(),
		CreatedAt:  now,
		LastUpdate: now,
	}
}

// CollateralAmount balance for one collateral token
func (c *CDP) CollateralAmount(token string) sdkmath.Int {
	if a, ok := c.Collateral[token]; ok {
		return a
	}
	return sdkmath.ZeroInt()
}

// TotalCollateral sum over every collateral token
func (c *CDP) TotalCollateral() sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, a := range c.Collateral {
		total = total.Add(a)
	}
	return total
}

// HasBadDebt debt outstanding with nothing left to seize
func (c *CDP) HasBadDebt() bool {
	return c.DTokens.IsPositive() && !c.TotalCollateral().IsPositive()
}

// ICDPStore position persistence, keyed by borrower address
type ICDPStore interface {
	Find(ctx context.Context, user string) (*CDP, error)
	Save(ctx context.Context, tx *db.DB, cdp *CDP) error
	All(ctx context.Context) ([]*CDP, error)
}
