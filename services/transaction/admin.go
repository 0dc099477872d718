package transaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/sirupsen/logrus"
	"github.com/sqlc-dev/pqtype"
)

// AdminAdjust credits or debits a wallet balance directly and records the
// movement as a SUCCESSFUL transaction. A debit can not take the balance
// below zero.
func (s *TransactionService) AdminAdjust(ctx context.Context, in AdminAdjustment) (*db.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, NewTransactionError(ErrAmountTooSmall, "")
	}
	if !ledger.IsMinorUnitAmount(in.Amount) {
		return nil, NewTransactionError(ErrAmountPrecision, "")
	}

	reference := utils.CreateReference()
	meta, err := json.Marshal(map[string]string{"adminId": in.AdminID.String()})
	if err != nil {
		return nil, err
	}

	txType, description, delta := TypeCredit, DescriptionAdminTopup, in.Amount
	if !in.Credit {
		txType, description, delta = TypeDebit, DescriptionAdminDeduction, in.Amount.Neg()
	}

	var record db.Transaction
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		wallet, err := q.GetWallet(ctx, in.WalletID)
		if errors.Is(err, sql.ErrNoRows) {
			return NewTransactionError(ErrWalletNotFound, "")
		} else if err != nil {
			return err
		}

		if in.Credit {
			if _, err := s.ledger.GetOrCreateBalance(ctx, q, wallet.ID, in.Currency); err != nil {
				return err
			}
		}

		record, err = q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:        wallet.UserID,
			WalletID:      wallet.ID,
			Amount:        in.Amount,
			Currency:      in.Currency,
			Type:          string(txType),
			Status:        string(StatusSuccessful),
			Reference:     reference,
			Description:   description,
			Meta:          pqtype.NullRawMessage{RawMessage: meta, Valid: true},
			DateCompleted: sql.NullTime{Time: time.Now(), Valid: true},
		})
		if err != nil {
			return fmt.Errorf("create adjustment: %w", err)
		}

		_, err = s.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
			WalletID:      wallet.ID,
			Currency:      in.Currency,
			Delta:         delta,
			LedgerDelta:   delta,
			TransactionID: nullUUID(record.ID),
			Reason:        ledger.ReasonAdminAdjustment,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"reference": reference,
		"wallet":    in.WalletID,
		"delta":     delta.String(),
		"admin":     in.AdminID,
	}).Info("wallet adjusted by admin")
	return &record, nil
}
