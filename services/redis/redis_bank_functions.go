package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
)

const BankListTTL = 24 * time.Hour

func bankKey(provider string) string {
	return fmt.Sprintf("banks:%s", strings.ToLower(provider))
}

// GetBanks returns the cached bank list for provider. Any miss or read error
// reports false so the caller falls back to the provider.
func (r *RedisService) GetBanks(ctx context.Context, provider string) ([]fiat.Bank, bool) {
	raw, err := r.client.Get(ctx, bankKey(provider)).Bytes()
	if err != nil {
		return nil, false
	}

	var banks []fiat.Bank
	if err := json.Unmarshal(raw, &banks); err != nil || len(banks) == 0 {
		return nil, false
	}
	return banks, true
}

// SetBanks caches the bank list for provider for BankListTTL.
func (r *RedisService) SetBanks(ctx context.Context, provider string, banks []fiat.Bank) error {
	raw, err := json.Marshal(banks)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, bankKey(provider), raw, BankListTTL).Err(); err != nil {
		return fmt.Errorf("could not store banks for %s in Redis: %w", provider, err)
	}
	return nil
}

// InvalidateBanks drops the cached list so the next read goes to the provider.
func (r *RedisService) InvalidateBanks(ctx context.Context, provider string) error {
	return r.client.Del(ctx, bankKey(provider)).Err()
}
