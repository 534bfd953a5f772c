package id

import (
	"github.com/gofrs/uuid"
)

// GenTraceID new trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// UUIDByName deterministic uuid derived from a namespace and a name
func UUIDByName(uuidStr, name string) string {
	ns, e := uuid.FromString(uuidStr)
	if e != nil {
		panic(e)
	}

	return uuid.NewV5(ns, name).String()
}

// AuctionID derive an auction id from the current block and timestamp.
//
// The scheme is not collision proof: a colliding id overwrites the
// previous auction (last write wins). The offset separates the three
// auction kinds created on the same block.
func AuctionID(block, timestamp int64, offset uint32) uint32 {
	return uint32(block) + uint32(timestamp) + offset
}
