package wallet

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"rwapool/core"
	"rwapool/pkg/id"
)

type walletService struct {
	transferStore core.ITransferStore
}

// New new wallet service
func New(transferStore core.ITransferStore) core.ITransferService {
	return &walletService{
		transferStore: transferStore,
	}
}

// Transfer record a token movement inside the caller's transaction.
//
// The cashier worker settles recorded rows against the token contracts;
// a failure here aborts the whole pool mutation.
func (s *walletService) Transfer(ctx context.Context, tx *db.DB, sender, receiver, asset string, amount sdkmath.Int, memo string) error {
	if amount.IsNil() || !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	transfer := &core.Transfer{
		TraceID:  id.GenTraceID(),
		Sender:   sender,
		Receiver: receiver,
		Asset:    asset,
		Amount:   amount.String(),
		Memo:     memo,
	}

	return s.transferStore.Create(ctx, tx, transfer)
}
