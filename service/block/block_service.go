package block

import (
	"context"
	"time"

	"rwapool/core"
)

const defaultSecondsPerBlock int64 = 5

type service struct {
	config *core.Config
}

// New new block service
func New(config *core.Config) core.IBlockService {
	return &service{
		config: config,
	}
}

// CurrentBlock ledger sequence derived from wall clock and the genesis time
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	secondsPerBlock := s.config.App.SecondsPerBlock
	if secondsPerBlock <= 0 {
		secondsPerBlock = defaultSecondsPerBlock
	}

	now := time.Now().Unix()
	if now < s.config.App.Genesis {
		return 0, core.ErrOperationForbidden
	}

	return (now - s.config.App.Genesis) / secondsPerBlock, nil
}
