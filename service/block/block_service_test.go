package block

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwapool/core"
)

func TestCurrentBlock(t *testing.T) {
	cfg := &core.Config{}
	cfg.App.Genesis = time.Now().Unix() - 100
	cfg.App.SecondsPerBlock = 5

	block, err := New(cfg).CurrentBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), block)
}

func TestCurrentBlockBeforeGenesis(t *testing.T) {
	cfg := &core.Config{}
	cfg.App.Genesis = time.Now().Unix() + 3600

	_, err := New(cfg).CurrentBlock(context.Background())
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
}
