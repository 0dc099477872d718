package wallet

import (
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BalanceModel struct {
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
}

type WalletModel struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Status    string         `json:"status"`
	Balances  []BalanceModel `json:"balances"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func ToWalletModel(wallet db.Wallet, balances []db.WalletBalance) *WalletModel {
	model := &WalletModel{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Status:    wallet.Status,
		Balances:  make([]BalanceModel, 0, len(balances)),
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
	for _, b := range balances {
		model.Balances = append(model.Balances, BalanceModel{
			Currency:      b.Currency,
			Balance:       b.Balance,
			LedgerBalance: b.LedgerBalance,
		})
	}
	return model
}
