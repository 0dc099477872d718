package currency

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	RateTTL        = 5 * time.Minute
	rateCleanupTTL = 10 * time.Minute
)

// RateCache keeps pair rates in process memory for RateTTL.
type RateCache struct {
	c *cache.Cache
}

func NewRateCache() *RateCache {
	return &RateCache{c: cache.New(RateTTL, rateCleanupTTL)}
}

func rateKey(base, target string) string {
	return fmt.Sprintf("rate:%s:%s", base, target)
}

func (rc *RateCache) Insert(base, target string, rate decimal.Decimal) {
	rc.c.Set(rateKey(base, target), rate, cache.DefaultExpiration)
}

func (rc *RateCache) Get(base, target string) (decimal.Decimal, bool) {
	val, found := rc.c.Get(rateKey(base, target))
	if !found {
		return decimal.Zero, false
	}
	rate, ok := val.(decimal.Decimal)
	return rate, ok
}

func (rc *RateCache) Flush() {
	rc.c.Flush()
}
