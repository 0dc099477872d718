package currency

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/notification"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sqlc-dev/pqtype"
)

var SupportedCurrencies = []string{"NGN", "USD"}

var MinConversionAmount = decimal.NewFromInt(100)

// Stored amounts carry four decimal places.
const amountScale = 4

// RateSource quotes how many units of target one unit of base buys.
type RateSource interface {
	GetPairRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

type ConvertRequest struct {
	Base   string
	Target string
	Amount decimal.Decimal
}

// Conversion holds both legs of a completed exchange.
type Conversion struct {
	Rate         decimal.Decimal `json:"rate"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Debit        db.Transaction  `json:"debit"`
	Credit       db.Transaction  `json:"credit"`
}

type conversionMeta struct {
	Rate             string `json:"rate"`
	Pair             string `json:"pair"`
	CounterReference string `json:"counterReference"`
}

type CurrencyService struct {
	store  db.Store
	ledger *ledger.LedgerService
	rates  RateSource
	cache  *RateCache
	logger *logging.Logger
}

func IsCurrencyValid(request string) bool {
	for _, c := range SupportedCurrencies {
		if request == c {
			return true
		}
	}

	return false
}

func IsCurrencyInvalid(request string) bool {
	return !IsCurrencyValid(request)
}

func NewCurrencyService(store db.Store, ledger *ledger.LedgerService, rates RateSource, logger *logging.Logger) *CurrencyService {
	return &CurrencyService{
		store:  store,
		ledger: ledger,
		rates:  rates,
		cache:  NewRateCache(),
		logger: logger,
	}
}

// GetPairRate returns the cached rate for base/target, asking the rate source
// on a miss. Any failure of the source surfaces as ErrNoExchangeRate.
func (c *CurrencyService) GetPairRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	base, target = strings.ToUpper(base), strings.ToUpper(target)
	if IsCurrencyInvalid(base) || IsCurrencyInvalid(target) {
		return decimal.Zero, NewCurrencyError(ErrUnsupportedCurrency, base, target)
	}
	if base == target {
		return decimal.NewFromInt(1), nil
	}

	if rate, ok := c.cache.Get(base, target); ok {
		return rate, nil
	}

	c.logger.Info(fmt.Sprintf("fetching rate of %v to %v", base, target))
	rate, err := c.rates.GetPairRate(ctx, base, target)
	if err != nil {
		c.logger.Error(fmt.Sprintf("rate lookup failed for %v/%v: %v", base, target, err))
		return decimal.Zero, NewCurrencyError(ErrNoExchangeRate, base, target, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, NewCurrencyError(ErrNoExchangeRate, base, target)
	}

	c.cache.Insert(base, target, rate)
	return rate, nil
}

// Convert debits amount in the base currency and credits amount*rate in the
// target currency in one unit, recording a SUCCESSFUL leg for each side. The
// base balance must already exist and cover amount; the target balance is
// created on first use.
func (c *CurrencyService) Convert(ctx context.Context, userID uuid.UUID, req ConvertRequest) (*Conversion, error) {
	base, target := strings.ToUpper(req.Base), strings.ToUpper(req.Target)
	if IsCurrencyInvalid(base) || IsCurrencyInvalid(target) {
		return nil, NewCurrencyError(ErrUnsupportedCurrency, base, target)
	}
	if base == target {
		return nil, NewCurrencyError(ErrSameCurrency, base, target)
	}
	if req.Amount.LessThan(MinConversionAmount) {
		return nil, NewCurrencyError(ErrAmountTooSmall, base, target)
	}
	if !ledger.IsMinorUnitAmount(req.Amount) {
		return nil, NewCurrencyError(ErrAmountPrecision, base, target)
	}

	rate, err := c.GetPairRate(ctx, base, target)
	if err != nil {
		return nil, err
	}
	targetAmount := req.Amount.Mul(rate).Round(amountScale)
	if !targetAmount.IsPositive() {
		return nil, NewCurrencyError(ErrAmountTooSmall, base, target)
	}

	refs := utils.CreateReferences(2)
	debitRef, creditRef := refs[0], refs[1]
	pair := base + "/" + target

	var conv Conversion
	err = c.store.ExecTx(ctx, func(q db.Querier) error {
		wallet, err := q.GetWalletByUserID(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return NewCurrencyError(ErrWalletNotFound, base, target)
		} else if err != nil {
			return err
		}
		if wallet.Status == transaction.WalletFrozen {
			return NewCurrencyError(ErrWalletFrozen, base, target)
		}

		debit, err := c.createLeg(ctx, q, wallet, transaction.TypeDebit, base, req.Amount, debitRef, conversionMeta{
			Rate: rate.String(), Pair: pair, CounterReference: creditRef,
		})
		if err != nil {
			return err
		}
		// sufficiency is checked against the base amount being debited
		_, err = c.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
			WalletID:      wallet.ID,
			Currency:      base,
			Delta:         req.Amount.Neg(),
			LedgerDelta:   req.Amount.Neg(),
			TransactionID: uuid.NullUUID{UUID: debit.ID, Valid: true},
			Reason:        ledger.ReasonConversionDebit,
		})
		if err != nil {
			return err
		}

		if _, err := c.ledger.GetOrCreateBalance(ctx, q, wallet.ID, target); err != nil {
			return err
		}
		credit, err := c.createLeg(ctx, q, wallet, transaction.TypeCredit, target, targetAmount, creditRef, conversionMeta{
			Rate: rate.String(), Pair: pair, CounterReference: debitRef,
		})
		if err != nil {
			return err
		}
		_, err = c.ledger.AdjustBalance(ctx, q, ledger.Adjustment{
			WalletID:      wallet.ID,
			Currency:      target,
			Delta:         targetAmount,
			LedgerDelta:   targetAmount,
			TransactionID: uuid.NullUUID{UUID: credit.ID, Valid: true},
			Reason:        ledger.ReasonConversionCredit,
		})
		if err != nil {
			return err
		}

		conv = Conversion{Rate: rate, TargetAmount: targetAmount, Debit: debit, Credit: credit}
		return notification.Queue(ctx, q, userID, notification.ConversionCompleted, notification.MoneyData{
			Amount:    req.Amount.StringFixed(2),
			Currency:  base,
			Reference: debitRef,
			Extra:     fmt.Sprintf("%s %s", targetAmount.String(), target),
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"pair":   pair,
		"rate":   rate.String(),
		"amount": req.Amount.String(),
		"credit": targetAmount.String(),
	}).Info("currency converted")
	return &conv, nil
}

func (c *CurrencyService) createLeg(ctx context.Context, q db.Querier, wallet db.Wallet, txType transaction.Type, currency string, amount decimal.Decimal, reference string, meta conversionMeta) (db.Transaction, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return db.Transaction{}, err
	}
	tx, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
		UserID:        wallet.UserID,
		WalletID:      wallet.ID,
		Amount:        amount,
		Fee:           decimal.Zero,
		Currency:      currency,
		Type:          string(txType),
		Status:        string(transaction.StatusSuccessful),
		Reference:     reference,
		Description:   transaction.DescriptionExchange,
		Meta:          pqtype.NullRawMessage{RawMessage: raw, Valid: true},
		DateCompleted: sql.NullTime{Time: time.Now(), Valid: true},
	})
	if err != nil {
		return db.Transaction{}, fmt.Errorf("create %s leg: %w", strings.ToLower(string(txType)), err)
	}
	return tx, nil
}
