package transaction

import (
	"context"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
)

// BankCache stores a provider's bank list between calls.
type BankCache interface {
	GetBanks(ctx context.Context, provider string) ([]fiat.Bank, bool)
	SetBanks(ctx context.Context, provider string, banks []fiat.Bank) error
}

// ListBanks returns the banks a provider can pay out to, from the cache when
// one is configured. A cache that cannot be written is logged and skipped.
func (s *TransactionService) ListBanks(ctx context.Context, provider string) ([]fiat.Bank, error) {
	gateway, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	if s.banks != nil {
		if banks, ok := s.banks.GetBanks(ctx, gateway.GetName()); ok {
			return banks, nil
		}
	}

	banks, err := gateway.GetBanks(ctx)
	if err != nil {
		return nil, err
	}

	if s.banks != nil {
		if err := s.banks.SetBanks(ctx, gateway.GetName(), banks); err != nil {
			s.logger.Warn("could not cache bank list: ", err)
		}
	}
	return banks, nil
}
