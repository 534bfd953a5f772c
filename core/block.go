package core

import "context"

// IBlockService ledger sequence lookup.
//
// Auction timing runs on the block counter, not wall clock.
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
}
