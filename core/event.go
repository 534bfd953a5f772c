package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// EventType event discriminator
type EventType string

const (
	EventTypeInterestAccrued        EventType = "interest_accrued"
	EventTypeDeposited              EventType = "deposited"
	EventTypeWithdrawn              EventType = "withdrawn"
	EventTypeCollateralAdded        EventType = "collateral_added"
	EventTypeCollateralRemoved      EventType = "collateral_removed"
	EventTypeBorrowed               EventType = "borrowed"
	EventTypeRepaid                 EventType = "repaid"
	EventTypeLiquidationInitiated   EventType = "liquidation_initiated"
	EventTypeLiquidationFilled      EventType = "liquidation_filled"
	EventTypeBadDebtAuctionCreated  EventType = "bad_debt_auction_created"
	EventTypeBadDebtAuctionFilled   EventType = "bad_debt_auction_filled"
	EventTypeInterestAuctionCreated EventType = "interest_auction_created"
	EventTypeInterestAuctionFilled  EventType = "interest_auction_filled"
	EventTypeBackstopDeposited      EventType = "backstop_deposited"
	EventTypeBackstopQueued         EventType = "backstop_queued"
	EventTypeBackstopWithdrawn      EventType = "backstop_withdrawn"
)

// Event a persisted protocol event
type Event struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	TraceID   string    `sql:"size:36;unique_index:event_trace_idx" json:"trace_id,omitempty"`
	Type      EventType `sql:"size:48;index:event_type_idx" json:"type,omitempty"`
	User      string    `sql:"size:64;index:event_user_idx" json:"user,omitempty"`
	Asset     string    `sql:"size:20" json:"asset,omitempty"`
	Payload   string    `sql:"type:text" json:"payload,omitempty"`
}

// IEventStore event outbox
type IEventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Event, error)
}
