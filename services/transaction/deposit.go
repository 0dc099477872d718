package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/notification"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// errAlreadyApplied aborts a unit that lost the race to record a reference.
var errAlreadyApplied = errors.New("reference already applied")

// InitiateDeposit records a PENDING top-up and asks the provider for a
// payment handle under the same reference. If the provider call fails the
// record stays PENDING and the error is returned.
func (s *TransactionService) InitiateDeposit(ctx context.Context, userID uuid.UUID, req DepositRequest) (*DepositResult, error) {
	if req.Amount.LessThan(MinDepositAmount) {
		return nil, NewTransactionError(ErrAmountTooSmall, "")
	}
	if !ledger.IsMinorUnitAmount(req.Amount) {
		return nil, NewTransactionError(ErrAmountPrecision, "")
	}

	gateway, err := s.gateway(req.Provider)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.walletForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	reference := utils.CreateReference()
	tx, err := s.store.CreateTransaction(ctx, db.CreateTransactionParams{
		UserID:      userID,
		WalletID:    wallet.ID,
		Amount:      req.Amount,
		Fee:         decimal.Zero,
		Currency:    BaseCurrency,
		Type:        string(TypeCredit),
		Status:      string(StatusPending),
		Provider:    nullString(gateway.GetName()),
		Reference:   reference,
		Description: DescriptionTopup,
	})
	if err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}

	handle, err := gateway.InitializeDeposit(ctx, fiat.DepositRequest{
		Reference:    reference,
		Amount:       req.Amount,
		Currency:     BaseCurrency,
		Email:        user.Email,
		CustomerName: strings.TrimSpace(user.FirstName + " " + user.LastName),
	})
	if err != nil {
		s.logger.WithReference(reference).Error(fmt.Sprintf("deposit initialization failed: %v", err))
		return &DepositResult{Transaction: tx}, NewTransactionError(err, reference)
	}

	s.logger.WithReference(reference).Info("deposit initiated")
	return &DepositResult{Transaction: tx, Handle: handle}, nil
}

// VerifyDeposit asks the provider for the state of reference and, when it is
// paid, credits the wallet exactly once.
func (s *TransactionService) VerifyDeposit(ctx context.Context, userID uuid.UUID, provider, reference string) (*VerifyResult, error) {
	gateway, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	remote, err := gateway.GetTransaction(ctx, reference)
	if err != nil {
		return nil, NewTransactionError(err, reference)
	}
	if remote == nil {
		return nil, NewTransactionError(ErrTransactionNotFound, reference)
	}
	if !strings.EqualFold(remote.CustomerEmail, user.Email) {
		s.logger.WithReference(reference).Warn(fmt.Sprintf("deposit email mismatch for user %v", userID))
		return nil, NewTransactionError(ErrOwnershipMismatch, reference)
	}

	wallet, err := s.walletForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	var result VerifyResult
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		local, err := q.GetTransactionByReferenceForUpdate(ctx, reference)
		if errors.Is(err, sql.ErrNoRows) {
			if !remote.Paid() {
				result = VerifyResult{Status: VerifyPending}
				return nil
			}
			tx, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
				UserID:        userID,
				WalletID:      wallet.ID,
				Amount:        remote.Amount,
				Fee:           decimal.Zero,
				Currency:      BaseCurrency,
				Type:          string(TypeCredit),
				Status:        string(StatusSuccessful),
				Provider:      nullString(gateway.GetName()),
				Reference:     reference,
				Description:   DescriptionTopup,
				DateCompleted: sql.NullTime{Time: time.Now(), Valid: true},
			})
			if db.IsDuplicateEntry(err) {
				return errAlreadyApplied
			} else if err != nil {
				return err
			}
			if err := s.creditDeposit(ctx, q, tx); err != nil {
				return err
			}
			result = VerifyResult{Status: VerifySuccessful, Transaction: &tx}
			return nil
		} else if err != nil {
			return err
		}

		if local.UserID != userID {
			return NewTransactionError(ErrOwnershipMismatch, reference)
		}
		if Type(local.Type) != TypeCredit {
			return NewTransactionError(ErrInvalidState, reference)
		}

		switch Status(local.Status) {
		case StatusSuccessful:
			result = VerifyResult{Status: VerifyAlreadyVerified, Transaction: &local}
			return nil
		case StatusPending:
			if !remote.Paid() {
				result = VerifyResult{Status: VerifyPending, Transaction: &local}
				return nil
			}
			completed, err := s.completeDeposit(ctx, q, local, remote.Amount)
			if err != nil {
				return err
			}
			result = VerifyResult{Status: VerifySuccessful, Transaction: &completed}
			return nil
		default:
			if remote.Paid() {
				s.logPaidAfterClose(local, remote.Amount)
			}
			result = VerifyResult{Status: VerifyPending, Transaction: &local}
			return nil
		}
	})

	if errors.Is(err, errAlreadyApplied) {
		tx, ferr := s.store.GetTransactionByReference(ctx, reference)
		if ferr != nil {
			return nil, ferr
		}
		return &VerifyResult{Status: VerifyAlreadyVerified, Transaction: &tx}, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"reference": reference, "result": result.Status}).Info("deposit verified")
	return &result, nil
}

// CancelDeposit fails a PENDING top-up owned by userID.
func (s *TransactionService) CancelDeposit(ctx context.Context, userID uuid.UUID, reference string) (*db.Transaction, error) {
	var cancelled db.Transaction
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, err := q.GetTransactionByReferenceForUpdate(ctx, reference)
		if errors.Is(err, sql.ErrNoRows) {
			return NewTransactionError(ErrTransactionNotFound, reference)
		} else if err != nil {
			return err
		}

		if tx.UserID != userID {
			return NewTransactionError(ErrOwnershipMismatch, reference)
		}
		if Type(tx.Type) != TypeCredit || !CanTransition(Status(tx.Status), StatusFailed) {
			return NewTransactionError(ErrInvalidState, reference)
		}

		cancelled, err = q.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
			ID:     tx.ID,
			Status: string(StatusFailed),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithReference(reference).Info("deposit cancelled")
	return &cancelled, nil
}

// ConfirmDeposit applies a provider's payment confirmation. It reports false
// when the reference is unknown or no longer PENDING.
func (s *TransactionService) ConfirmDeposit(ctx context.Context, reference string, amount decimal.Decimal) (bool, error) {
	applied := false
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		tx, err := q.GetTransactionByReferenceForUpdate(ctx, reference)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		} else if err != nil {
			return err
		}

		if Type(tx.Type) != TypeCredit {
			return nil
		}
		if Status(tx.Status) != StatusPending {
			if Status(tx.Status) != StatusSuccessful {
				s.logPaidAfterClose(tx, amount)
			}
			return nil
		}

		if _, err := s.completeDeposit(ctx, q, tx, amount); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// completeDeposit marks tx SUCCESSFUL with the paid amount and credits it.
func (s *TransactionService) completeDeposit(ctx context.Context, q db.Querier, tx db.Transaction, paid decimal.Decimal) (db.Transaction, error) {
	if !paid.IsPositive() {
		paid = tx.Amount
	}
	completed, err := q.CompleteTransaction(ctx, db.CompleteTransactionParams{ID: tx.ID, Amount: paid})
	if err != nil {
		return db.Transaction{}, fmt.Errorf("complete deposit: %w", err)
	}
	if err := s.creditDeposit(ctx, q, completed); err != nil {
		return db.Transaction{}, err
	}
	return completed, nil
}

func (s *TransactionService) creditDeposit(ctx context.Context, q db.Querier, tx db.Transaction) error {
	if _, err := s.ledger.GetOrCreateBalance(ctx, q, tx.WalletID, tx.Currency); err != nil {
		return err
	}
	_, err := s.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
		WalletID:      tx.WalletID,
		Currency:      tx.Currency,
		Delta:         tx.Amount,
		LedgerDelta:   tx.Amount,
		TransactionID: nullUUID(tx.ID),
		Reason:        ledger.ReasonDeposit,
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"reference": tx.Reference, "amount": tx.Amount.String()}).Info("deposit credited")
	return notification.Queue(ctx, q, tx.UserID, notification.DepositCredited, notification.MoneyData{
		Amount:    tx.Amount.StringFixed(2),
		Currency:  tx.Currency,
		Reference: tx.Reference,
	})
}

// logPaidAfterClose flags a payment for a deposit that was already cancelled
// or failed locally. It is not credited automatically.
func (s *TransactionService) logPaidAfterClose(tx db.Transaction, paid decimal.Decimal) {
	s.logger.WithFields(logrus.Fields{
		"reference": tx.Reference,
		"status":    tx.Status,
		"user":      tx.UserID,
		"paid":      paid.String(),
	}).Error("provider reports payment for a closed deposit, credit manually")
}
