package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

const (
	// BackstopWithdrawalQueueSeconds withdrawal queue delay, 17 days
	BackstopWithdrawalQueueSeconds int64 = 17 * 24 * 60 * 60
)

// BackstopDeposit one depositor's stake in the backstop
type BackstopDeposit struct {
	Amount      sdkmath.Int `json:"amount"`
	DepositedAt int64       `json:"deposited_at"`
}

// WithdrawalRequest queued backstop exit
type WithdrawalRequest struct {
	Address  string      `json:"address"`
	Amount   sdkmath.Int `json:"amount"`
	QueuedAt int64       `json:"queued_at"`
}

// IBackstopService backstop pool operations
type IBackstopService interface {
	Deposit(ctx context.Context, user string, amount sdkmath.Int) error
	// QueueWithdrawal start the 17 day exit clock on part of a stake
	QueueWithdrawal(ctx context.Context, user string, amount sdkmath.Int) error
	// Withdraw claim a matured queue entry
	Withdraw(ctx context.Context, user string) (sdkmath.Int, error)
}
