package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuctionID(t *testing.T) {
	block, ts := int64(1_000), int64(1_700_000_000)

	badDebt := AuctionID(block, ts, 0)
	interest := AuctionID(block, ts, 1000)
	liquidation := AuctionID(block, ts, 2000)

	assert.Equal(t, badDebt+1000, interest, "kind offsets separate ids on the same block")
	assert.Equal(t, badDebt+2000, liquidation)

	// the id is truncated 32 bit arithmetic: distant block heights can
	// collide and the newer auction overwrites the older one
	assert.Equal(t, badDebt, AuctionID(block+(1<<32), ts, 0))
	assert.Equal(t, badDebt, AuctionID(block, ts+(1<<32), 0))

	// adjacent blocks never collide within a kind
	assert.NotEqual(t, badDebt, AuctionID(block+1, ts, 0))
}

func TestGenTraceID(t *testing.T) {
	a, b := GenTraceID(), GenTraceID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestUUIDByName(t *testing.T) {
	ns := GenTraceID()
	assert.Equal(t, UUIDByName(ns, "alice"), UUIDByName(ns, "alice"))
	assert.NotEqual(t, UUIDByName(ns, "alice"), UUIDByName(ns, "bob"))
}
