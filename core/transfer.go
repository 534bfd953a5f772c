package core

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
)

// Transfer a recorded token movement, handed to the token contracts by
// the cashier worker
type Transfer struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	TraceID   string    `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	Sender    string    `sql:"size:64" json:"sender,omitempty"`
	Receiver  string    `sql:"size:64" json:"receiver,omitempty"`
	Asset     string    `sql:"size:20" json:"asset,omitempty"`
	Amount    string    `sql:"size:48" json:"amount,omitempty"`
	Memo      string    `sql:"size:140" json:"memo,omitempty"`
	Handled   bool      `sql:"default:false" json:"handled,omitempty"`
}

// ITransferStore transfer outbox
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
	MarkHandled(ctx context.Context, tx *db.DB, id uint64) error
}

// ITransferService synchronous token movement.
//
// Implementations record the movement in the same database transaction as
// the pool mutation; a failure aborts the whole call.
type ITransferService interface {
	Transfer(ctx context.Context, tx *db.DB, sender, receiver, asset string, amount sdkmath.Int, memo string) error
}
