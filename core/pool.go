package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
)

// PoolAccount the custodial account token movements settle against
const PoolAccount = "pool"

// PoolStatus pool lifecycle status
type PoolStatus int

const (
	// PoolStatusActive all operations enabled
	PoolStatusActive PoolStatus = iota
	// PoolStatusOnIce borrowing disabled
	PoolStatusOnIce
	// PoolStatusFrozen borrowing and depositing disabled
	PoolStatusFrozen
)

// PoolState the whole pool document.
//
// The document is loaded, mutated in memory and written back as a unit;
// there is no partial update path. Writers race on Version.
type PoolState struct {
	Status PoolStatus `json:"status"`

	// PoolBalances underlying cash held by the pool, per asset symbol
	PoolBalances map[string]sdkmath.Int `json:"pool_balances"`

	// Reserves exchange rates and supplies, per asset symbol
	Reserves map[string]*ReserveData `json:"reserves"`

	// RateParams interest curve parameters, per asset symbol
	RateParams map[string]*InterestRateParams `json:"rate_params"`

	// CollateralFactors per collateral token symbol, 7 decimals
	CollateralFactors map[string]int64 `json:"collateral_factors"`

	// TokenContracts token contract address per asset symbol
	TokenContracts map[string]string `json:"token_contracts"`

	// BTokens lender share balances: user -> asset symbol -> bTokens
	BTokens map[string]map[string]sdkmath.Int `json:"b_tokens"`

	// Auctions live auctions by id
	Auctions map[uint32]*AuctionData `json:"auctions"`

	// Backstop bookkeeping
	BackstopDeposits  map[string]*BackstopDeposit `json:"backstop_deposits"`
	BackstopTotal     sdkmath.Int                 `json:"backstop_total"`
	BackstopThreshold sdkmath.Int                 `json:"backstop_threshold"`
	BackstopTakeRate  int64                       `json:"backstop_take_rate"`
	WithdrawalQueue   []*WithdrawalRequest        `json:"withdrawal_queue"`
	BackstopToken     string                      `json:"backstop_token"`

	// Oracle contract addresses
	RWAOracle    string `json:"rwa_oracle"`
	CryptoOracle string `json:"crypto_oracle"`

	Admin string `json:"admin"`

	// Version optimistic lock, managed by the pool store
	Version int64 `json:"-"`
}

// NewPoolState empty pool document, pools start on ice
func NewPoolState(admin, rwaOracle, cryptoOracle string, backstopThreshold sdkmath.Int, backstopTakeRate int64) *PoolState {
	return &PoolState{
		Status:            PoolStatusOnIce,
		PoolBalances:      map[string]sdkmath.Int{},
		Reserves:          map[string]*ReserveData{},
		RateParams:        map[string]*InterestRateParams{},
		CollateralFactors: map[string]int64{},
		TokenContracts:    map[string]string{},
		BTokens:           map[string]map[string]sdkmath.Int{},
		Auctions:          map[uint32]*AuctionData{},
		BackstopDeposits:  map[string]*BackstopDeposit{},
		BackstopTotal:     sdkmath.ZeroInt(),
		BackstopThreshold: backstopThreshold,
		BackstopTakeRate:  backstopTakeRate,
		WithdrawalQueue:   []*WithdrawalRequest{},
		RWAOracle:         rwaOracle,
		CryptoOracle:      cryptoOracle,
		Admin:             admin,
	}
}

// Reserve fetch the reserve for an asset, creating it lazily at 1:1 rates
func (s *PoolState) Reserve(asset string, now int64) *ReserveData {
	r, ok := s.Reserves[asset]
	if !ok {
		r = NewReserveData(now)
		s.Reserves[asset] = r
	}
	return r
}

// Params rate params for an asset, falling back to the defaults
func (s *PoolState) Params(asset string) *InterestRateParams {
	if p, ok := s.RateParams[asset]; ok {
		return p
	}
	return DefaultRateParams()
}

// CollateralFactor factor for a collateral token, default 75%
func (s *PoolState) CollateralFactor(token string) int64 {
	if f, ok := s.CollateralFactors[token]; ok {
		return f
	}
	return 7_500_000
}

// Balance pool cash for an asset
func (s *PoolState) Balance(asset string) sdkmath.Int {
	if b, ok := s.PoolBalances[asset]; ok {
		return b
	}
	return sdkmath.ZeroInt()
}

// BTokenBalance lender share balance
func (s *PoolState) BTokenBalance(user, asset string) sdkmath.Int {
	if m, ok := s.BTokens[user]; ok {
		if b, ok := m[asset]; ok {
			return b
		}
	}
	return sdkmath.ZeroInt()
}

// SetBTokenBalance set lender share balance
func (s *PoolState) SetBTokenBalance(user, asset string, amount sdkmath.Int) {
	m, ok := s.BTokens[user]
	if !ok {
		m = map[string]sdkmath.Int{}
		s.BTokens[user] = m
	}
	m[asset] = amount
}

// PoolStore whole-document persistence by a fixed key
type PoolStore interface {
	// Create persist the initial document, fails if one exists
	Create(ctx context.Context, state *PoolState) error
	// Load the whole document
	Load(ctx context.Context) (*PoolState, error)
	// Save write back the whole document, guarded by state.Version
	Save(ctx context.Context, tx *db.DB, state *PoolState) error
}
