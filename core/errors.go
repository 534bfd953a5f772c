package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrArithmetic overflow, underflow or division by zero
	ErrArithmetic ErrorCode = 100002
	// ErrVersionConflict optimistic lock failed, reload and retry
	ErrVersionConflict ErrorCode = 100003
	// ErrNotInitialized pool document missing
	ErrNotInitialized ErrorCode = 100004
	// ErrAlreadyInitialized pool document exists
	ErrAlreadyInitialized ErrorCode = 100005

	// ErrReserveNotFound no reserve for asset
	ErrReserveNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientLiquidity pool cash is not enough
	ErrInsufficientLiquidity ErrorCode = 100102
	// ErrInsufficientCollateral collateral balance is not enough
	ErrInsufficientCollateral ErrorCode = 100103
	// ErrInsufficientBalance token balance is not enough
	ErrInsufficientBalance ErrorCode = 100104
	// ErrPoolFrozen deposit and borrow disabled
	ErrPoolFrozen ErrorCode = 100105
	// ErrBorrowDisabled pool is on ice, borrow disabled
	ErrBorrowDisabled ErrorCode = 100106
	// ErrInvalidCollateralFactor collateral factor out of [0, 1]
	ErrInvalidCollateralFactor ErrorCode = 100107
	// ErrInvalidRateParams interest rate params out of bounds
	ErrInvalidRateParams ErrorCode = 100108
	// ErrTokenContractNotSet no token contract registered for asset
	ErrTokenContractNotSet ErrorCode = 100109

	// ErrCDPNotFound no position for borrower
	ErrCDPNotFound ErrorCode = 100200
	// ErrDebtAssetNotSet position has no debt asset
	ErrDebtAssetNotSet ErrorCode = 100201
	// ErrDebtAssetMismatch debt asset differs from the requested one
	ErrDebtAssetMismatch ErrorCode = 100202
	// ErrCDPNotInsolvent health factor is not below one
	ErrCDPNotInsolvent ErrorCode = 100203
	// ErrHealthFactorTooHigh fill would over liquidate the borrower
	ErrHealthFactorTooHigh ErrorCode = 100204
	// ErrHealthFactorTooLow operation would leave the position unsafe
	ErrHealthFactorTooLow ErrorCode = 100205

	// ErrAuctionNotFound no auction with that id
	ErrAuctionNotFound ErrorCode = 100300
	// ErrAuctionNotActive auction exists but cannot serve the request
	ErrAuctionNotActive ErrorCode = 100301
	// ErrInvalidFillPercent fill percent out of (0, 1]
	ErrInvalidFillPercent ErrorCode = 100302

	// ErrInvalidPrice oracle price is zero or negative
	ErrInvalidPrice ErrorCode = 100400
	// ErrStalePrice oracle price is older than the staleness bound
	ErrStalePrice ErrorCode = 100401

	// ErrWithdrawalNotQueued no matching entry in the withdrawal queue
	ErrWithdrawalNotQueued ErrorCode = 100500
	// ErrWithdrawalNotMatured queue delay has not elapsed yet
	ErrWithdrawalNotMatured ErrorCode = 100501
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
