package auction

import (
	sdkmath "cosmossdk.io/math"

	"rwapool/core"
	"rwapool/pkg/fixedpoint"
)

// Modifiers linear lot and bid modifiers for an auction kind, both at the
// exchange rate scale, computed from the blocks elapsed since the auction
// started.
//
// Once the ramp completes the lot clamps at 1.0 and the bid at 0: a late
// filler takes the whole lot for nothing. That decay-to-free endgame is an
// economic parameter of the protocol, not an accident.
func Modifiers(typ core.AuctionType, blocksElapsed int64) (lot, bid sdkmath.Int) {
	if blocksElapsed < 0 {
		blocksElapsed = 0
	}

	one := fixedpoint.ScalarExchange

	switch typ {
	case core.AuctionTypeUserLiquidation:
		// lot ramps 0 -> 1 over the duration; bid holds at 1 through the
		// duration, then decays 1 -> 0 over a second window
		duration := core.AuctionDurationBlocks
		if blocksElapsed <= duration {
			return sdkmath.NewInt(blocksElapsed * one / duration), sdkmath.NewInt(one)
		}
		if blocksElapsed >= 2*duration {
			return sdkmath.NewInt(one), sdkmath.ZeroInt()
		}

		decrease := (blocksElapsed - duration) * one / duration
		return sdkmath.NewInt(one), sdkmath.NewInt(one - decrease)

	case core.AuctionTypeBadDebt:
		duration := core.BadDebtAuctionDurationBlocks
		if blocksElapsed >= duration {
			return sdkmath.NewInt(one), sdkmath.ZeroInt()
		}

		progress := blocksElapsed * one / duration
		return sdkmath.NewInt(progress), sdkmath.NewInt(one - progress)

	default:
		// interest: lot held at 1, bid decays 1 -> 0
		duration := core.AuctionDurationBlocks
		if blocksElapsed >= duration {
			return sdkmath.NewInt(one), sdkmath.ZeroInt()
		}

		progress := blocksElapsed * one / duration
		return sdkmath.NewInt(one), sdkmath.NewInt(one - progress)
	}
}
