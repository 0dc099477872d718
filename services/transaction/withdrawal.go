package transaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/notification"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sqlc-dev/pqtype"
)

// ValidateAccount resolves a bank account through the provider. An unknown
// account is a validation error, not a provider failure.
func (s *TransactionService) ValidateAccount(ctx context.Context, provider, bankCode, accountNumber string) (*fiat.AccountInfo, error) {
	gateway, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	info, err := gateway.VerifyAccount(ctx, bankCode, accountNumber)
	if err != nil {
		return nil, err
	}
	if info == nil || info.AccountName == "" {
		return nil, NewTransactionError(ErrInvalidAccount, "")
	}
	return info, nil
}

// InitiateWithdrawal reserves amount+fee from the NGN balance and records the
// DEBIT transaction and its withdrawal request together. Amounts within the
// auto-withdrawal threshold are disbursed before returning.
func (s *TransactionService) InitiateWithdrawal(ctx context.Context, userID uuid.UUID, in WithdrawalInput) (*WithdrawalResult, error) {
	if !ledger.IsMinorUnitAmount(in.Amount) {
		return nil, NewTransactionError(ErrAmountPrecision, "")
	}
	if err := s.policy.ValidateAmount(in.Amount); err != nil {
		return nil, NewTransactionError(ErrValidation, "", err)
	}

	gateway, err := s.gateway(in.Provider)
	if err != nil {
		return nil, err
	}

	account, err := s.ValidateAccount(ctx, gateway.GetName(), in.BankCode, in.AccountNumber)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status == WalletFrozen {
		return nil, NewTransactionError(ErrWalletFrozen, "")
	}

	fee := s.policy.Fee(in.Amount)
	reference := utils.CreateReference()
	meta, err := json.Marshal(WithdrawalMeta{
		BankCode:      in.BankCode,
		AccountNumber: in.AccountNumber,
		AccountName:   account.AccountName,
	})
	if err != nil {
		return nil, err
	}

	var result WithdrawalResult
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:      userID,
			WalletID:    wallet.ID,
			Amount:      in.Amount,
			Fee:         fee,
			Currency:    BaseCurrency,
			Type:        string(TypeDebit),
			Status:      string(StatusPending),
			Provider:    nullString(gateway.GetName()),
			Reference:   reference,
			Description: DescriptionWithdrawal,
			Meta:        pqtype.NullRawMessage{RawMessage: meta, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("create withdrawal: %w", err)
		}

		_, err = s.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
			WalletID:      wallet.ID,
			Currency:      BaseCurrency,
			Delta:         in.Amount.Add(fee).Neg(),
			TransactionID: nullUUID(tx.ID),
			Reason:        ledger.ReasonWithdrawal,
		})
		if err != nil {
			return err
		}

		request, err := q.CreateWithdrawalRequest(ctx, db.CreateWithdrawalRequestParams{
			UserID:        userID,
			TransactionID: tx.ID,
			WalletID:      wallet.ID,
			Amount:        in.Amount,
			Status:        string(WithdrawalPending),
		})
		if err != nil {
			return fmt.Errorf("create withdrawal request: %w", err)
		}

		result = WithdrawalResult{Transaction: tx, Request: request}
		return notification.Queue(ctx, q, userID, notification.WithdrawalRequested, notification.MoneyData{
			Amount:    in.Amount.StringFixed(2),
			Currency:  BaseCurrency,
			Fee:       fee.StringFixed(2),
			Reference: reference,
			Extra:     fmt.Sprintf("%s (%s)", account.AccountName, in.AccountNumber),
		})
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{"reference": reference, "amount": in.Amount.String(), "fee": fee.String()})
	if !s.policy.ShouldAutoProcess(in.Amount) {
		log.Info("withdrawal queued for approval")
		return &result, nil
	}

	log.Info("auto-processing withdrawal")
	processed, err := s.processWithdrawal(ctx, result.Request.ID, uuid.Nil, true)
	if processed != nil {
		result = *processed
	}
	return &result, err
}

// ApproveWithdrawal disburses a PENDING request. Settlement arrives later by
// webhook.
func (s *TransactionService) ApproveWithdrawal(ctx context.Context, requestID, adminID uuid.UUID) (*WithdrawalResult, error) {
	return s.processWithdrawal(ctx, requestID, adminID, false)
}

// RejectWithdrawal declines a PENDING request and returns amount+fee to the
// wallet.
func (s *TransactionService) RejectWithdrawal(ctx context.Context, requestID, adminID uuid.UUID) (*WithdrawalResult, error) {
	var result WithdrawalResult
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, request, err := s.lockWithdrawal(ctx, q, requestID)
		if err != nil {
			return err
		}
		if !CanProcessWithdrawal(WithdrawalStatus(request.Status)) || Status(tx.Status) != StatusPending {
			return NewTransactionError(ErrInvalidState, tx.Reference)
		}

		result, err = s.refundWithdrawal(ctx, q, tx, request, adminID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"reference": result.Transaction.Reference, "admin": adminID}).Info("withdrawal rejected")
	return &result, nil
}

// processWithdrawal holds the transaction and request rows locked across the
// provider call so a request is disbursed at most once. A provider that
// cannot be reached leaves both rows untouched.
func (s *TransactionService) processWithdrawal(ctx context.Context, requestID, adminID uuid.UUID, auto bool) (*WithdrawalResult, error) {
	var (
		result   WithdrawalResult
		declined error
	)
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, request, err := s.lockWithdrawal(ctx, q, requestID)
		if err != nil {
			return err
		}
		if !CanProcessWithdrawal(WithdrawalStatus(request.Status)) || Status(tx.Status) != StatusPending {
			return NewTransactionError(ErrInvalidState, tx.Reference)
		}

		gateway, err := s.gateway(tx.Provider.String)
		if err != nil {
			return err
		}
		meta, err := decodeWithdrawalMeta(tx)
		if err != nil {
			return err
		}

		log := s.logger.WithFields(logrus.Fields{"reference": tx.Reference, "provider": gateway.GetName()})
		disbursement, err := gateway.SingleDisbursement(ctx, fiat.DisbursementRequest{
			Reference:     tx.Reference,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			Narration:     fmt.Sprintf("SwiftFiat withdrawal %s", tx.Reference),
			BankCode:      meta.BankCode,
			AccountNumber: meta.AccountNumber,
			AccountName:   meta.AccountName,
		})
		if errors.Is(err, fiat.ErrProviderRejected) {
			// A retry after a timeout can be refused as a duplicate of a
			// transfer the provider already took on.
			existing, lerr := gateway.GetDisbursement(ctx, tx.Reference)
			switch {
			case lerr != nil:
				log.Error(fmt.Sprintf("disbursement rejected (%v) and status lookup failed: %v", err, lerr))
				return NewTransactionError(ErrDisbursementFailed, tx.Reference)
			case existing != nil && existing.Accepted():
				log.Warn(fmt.Sprintf("disbursement rejected (%v) but provider already holds it as %s", err, existing.RawStatus))
				disbursement, err = existing, nil
			}
		}

		switch {
		case errors.Is(err, fiat.ErrProviderRejected):
			log.Warn(fmt.Sprintf("disbursement rejected: %v", err))
			declined = NewTransactionError(ErrDisbursementDeclined, tx.Reference, err)
			result, err = s.refundWithdrawal(ctx, q, tx, request, adminID, false)
			return err
		case err != nil:
			log.Error(fmt.Sprintf("disbursement failed: %v", err))
			return NewTransactionError(ErrDisbursementFailed, tx.Reference, err)
		case !disbursement.Accepted():
			log.Warn(fmt.Sprintf("disbursement reported %s", disbursement.RawStatus))
			declined = NewTransactionError(ErrDisbursementDeclined, tx.Reference)
			result, err = s.refundWithdrawal(ctx, q, tx, request, adminID, false)
			return err
		}

		updated, err := q.UpdateWithdrawalRequestStatus(ctx, db.UpdateWithdrawalRequestStatusParams{
			ID:              request.ID,
			Status:          string(WithdrawalProcessing),
			ProcessedBy:     nullUUID(adminID),
			IsAutoWithdrawn: auto,
		})
		if err != nil {
			return err
		}
		result = WithdrawalResult{Transaction: tx, Request: updated}
		log.Info(fmt.Sprintf("disbursement accepted with status %s", disbursement.RawStatus))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, declined
}

// SettleWithdrawal applies a successful payout reported by the provider.
func (s *TransactionService) SettleWithdrawal(ctx context.Context, reference string) (bool, error) {
	applied := false
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, request, ok, err := s.lockWithdrawalByReference(ctx, q, reference)
		if err != nil || !ok {
			return err
		}
		if Status(tx.Status) != StatusPending || !CanSettleWithdrawal(WithdrawalStatus(request.Status)) {
			if tx.WasRefunded {
				s.logger.WithFields(logrus.Fields{
					"reference": reference,
					"amount":    tx.Amount.String(),
					"fee":       tx.Fee.String(),
				}).Error("payout settled for a withdrawal that was already refunded, recover manually")
			}
			return nil
		}

		completed, err := q.CompleteTransaction(ctx, db.CompleteTransactionParams{ID: tx.ID, Amount: tx.Amount})
		if err != nil {
			return err
		}
		_, err = q.UpdateWithdrawalRequestStatus(ctx, db.UpdateWithdrawalRequestStatusParams{
			ID:     request.ID,
			Status: string(WithdrawalApproved),
		})
		if err != nil {
			return err
		}

		// the spendable balance was reserved at initiation
		_, err = s.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
			WalletID:      tx.WalletID,
			Currency:      tx.Currency,
			LedgerDelta:   tx.Amount.Add(tx.Fee).Neg(),
			TransactionID: nullUUID(tx.ID),
			Reason:        ledger.ReasonSettlement,
		})
		if err != nil {
			return err
		}

		applied = true
		return notification.Queue(ctx, q, tx.UserID, notification.WithdrawalCompleted, notification.MoneyData{
			Amount:    completed.Amount.StringFixed(2),
			Currency:  completed.Currency,
			Reference: completed.Reference,
		})
	})
	return applied, err
}

// FailWithdrawal applies a failed or reversed payout and refunds the wallet.
// A reversal that arrives after the withdrawal already settled is logged and
// ignored.
func (s *TransactionService) FailWithdrawal(ctx context.Context, reference string, reversed bool) (bool, error) {
	applied := false
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, request, ok, err := s.lockWithdrawalByReference(ctx, q, reference)
		if err != nil || !ok {
			return err
		}
		if Status(tx.Status) != StatusPending || !CanSettleWithdrawal(WithdrawalStatus(request.Status)) {
			if reversed && Status(tx.Status) == StatusSuccessful {
				s.logger.WithReference(reference).Warn("reversal received for a settled withdrawal")
			}
			return nil
		}

		if _, err := s.refundWithdrawal(ctx, q, tx, request, uuid.Nil, reversed); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// refundWithdrawal fails tx, declines request and returns amount+fee.
func (s *TransactionService) refundWithdrawal(ctx context.Context, q db.Querier, tx db.Transaction, request db.WithdrawalRequest, processedBy uuid.UUID, reversed bool) (WithdrawalResult, error) {
	refunded, err := q.RefundTransaction(ctx, db.RefundTransactionParams{ID: tx.ID, WasReverted: reversed})
	if err != nil {
		return WithdrawalResult{}, err
	}
	declined, err := q.UpdateWithdrawalRequestStatus(ctx, db.UpdateWithdrawalRequestStatusParams{
		ID:          request.ID,
		Status:      string(WithdrawalDeclined),
		ProcessedBy: nullUUID(processedBy),
	})
	if err != nil {
		return WithdrawalResult{}, err
	}

	total := tx.Amount.Add(tx.Fee)
	_, err = s.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
		WalletID:      tx.WalletID,
		Currency:      tx.Currency,
		Delta:         total,
		TransactionID: nullUUID(tx.ID),
		Reason:        ledger.ReasonRefund,
	})
	if err != nil {
		return WithdrawalResult{}, err
	}

	s.logger.WithFields(logrus.Fields{"reference": tx.Reference, "refund": total.String(), "reversed": reversed}).Info("withdrawal refunded")
	err = notification.Queue(ctx, q, tx.UserID, notification.WithdrawalFailed, notification.MoneyData{
		Amount:    tx.Amount.StringFixed(2),
		Currency:  tx.Currency,
		Reference: tx.Reference,
		Extra:     total.StringFixed(2),
	})
	return WithdrawalResult{Transaction: refunded, Request: declined}, err
}

// lockWithdrawal locks the transaction row before the request row, the same
// order the webhook path uses.
func (s *TransactionService) lockWithdrawal(ctx context.Context, q db.Querier, requestID uuid.UUID) (db.Transaction, db.WithdrawalRequest, error) {
	request, err := q.GetWithdrawalRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Transaction{}, db.WithdrawalRequest{}, NewTransactionError(ErrWithdrawalNotFound, "")
	} else if err != nil {
		return db.Transaction{}, db.WithdrawalRequest{}, err
	}

	tx, err := q.GetTransactionForUpdate(ctx, request.TransactionID)
	if err != nil {
		return db.Transaction{}, db.WithdrawalRequest{}, fmt.Errorf("lock withdrawal transaction: %w", err)
	}
	request, err = q.GetWithdrawalRequestForUpdate(ctx, requestID)
	if err != nil {
		return db.Transaction{}, db.WithdrawalRequest{}, err
	}
	return tx, request, nil
}

func (s *TransactionService) lockWithdrawalByReference(ctx context.Context, q db.Querier, reference string) (db.Transaction, db.WithdrawalRequest, bool, error) {
	tx, err := q.GetTransactionByReferenceForUpdate(ctx, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Transaction{}, db.WithdrawalRequest{}, false, nil
	} else if err != nil {
		return db.Transaction{}, db.WithdrawalRequest{}, false, err
	}
	if Type(tx.Type) != TypeDebit {
		return tx, db.WithdrawalRequest{}, false, nil
	}

	request, err := q.GetWithdrawalRequestByTransactionForUpdate(ctx, tx.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return tx, db.WithdrawalRequest{}, false, nil
	} else if err != nil {
		return db.Transaction{}, db.WithdrawalRequest{}, false, err
	}
	return tx, request, true, nil
}
