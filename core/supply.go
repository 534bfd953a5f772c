package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// ISupplyService lender operations
type ISupplyService interface {
	// Deposit underlying in, bTokens minted rounding down
	Deposit(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error)
	// Withdraw bTokens burned, underlying paid out rounding down
	Withdraw(ctx context.Context, user, asset string, bTokens sdkmath.Int) (sdkmath.Int, error)
}

// IBorrowService borrower operations
type IBorrowService interface {
	AddCollateral(ctx context.Context, user, token string, amount sdkmath.Int) error
	// RemoveCollateral blocked when it would drop the health factor
	// below the minimum
	RemoveCollateral(ctx context.Context, user, token string, amount sdkmath.Int) error
	// Borrow dTokens minted rounding up; one debt asset per position
	Borrow(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error)
	// Repay dTokens burned rounding down; clears the debt asset at zero
	Repay(ctx context.Context, user, asset string, amount sdkmath.Int) (sdkmath.Int, error)
}
