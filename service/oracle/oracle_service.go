package oracle

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/bluele/gcache"
	"github.com/shopspring/decimal"

	"rwapool/core"
	"rwapool/pkg/resthttp"
)

const defaultCacheSeconds int64 = 10

type priceResponse struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

type oracleService struct {
	config *core.Config
	cache  gcache.Cache
}

// New new oracle service backed by the price gateway
func New(config *core.Config) core.IOracleService {
	return &oracleService{
		config: config,
		cache:  gcache.New(64).LRU().Build(),
	}
}

// GetPrice latest validated quote for a symbol.
//
// Quotes are cached briefly; the 24 hour staleness bound is checked on
// every call regardless of the cache.
func (s *oracleService) GetPrice(ctx context.Context, symbol string) (*core.PriceData, error) {
	if v, err := s.cache.Get(symbol); err == nil {
		if p, ok := v.(*core.PriceData); ok {
			if err := p.Validate(time.Now().Unix()); err == nil {
				return p, nil
			}
		}
	}

	price, err := s.fetchPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := price.Validate(time.Now().Unix()); err != nil {
		return nil, err
	}

	cacheSeconds := s.config.Oracle.CacheSeconds
	if cacheSeconds <= 0 {
		cacheSeconds = defaultCacheSeconds
	}
	_ = s.cache.SetWithExpire(symbol, price, time.Duration(cacheSeconds)*time.Second)

	return price, nil
}

func (s *oracleService) fetchPrice(ctx context.Context, symbol string) (*core.PriceData, error) {
	url := fmt.Sprintf("%s/prices/%s", s.config.Oracle.EndPoint, symbol)

	var resp priceResponse
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &resp); err != nil {
		return nil, err
	}

	scaled := resp.Price.Shift(core.PriceDecimals).Truncate(0)

	return &core.PriceData{
		Price:     sdkmath.NewIntFromBigInt(scaled.BigInt()),
		Timestamp: resp.Timestamp,
		Decimals:  core.PriceDecimals,
	}, nil
}
