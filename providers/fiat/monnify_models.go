package fiat

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MonnifyResponse is the envelope every Monnify endpoint answers with.
type MonnifyResponse[T any] struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseCode      string `json:"responseCode"`
	ResponseBody      T      `json:"responseBody"`
}

type monnifyLogin struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type monnifyCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type monnifyTransaction struct {
	TransactionReference string          `json:"transactionReference"`
	PaymentReference     string          `json:"paymentReference"`
	AmountPaid           decimal.Decimal `json:"amountPaid"`
	PaymentStatus        string          `json:"paymentStatus"`
	Currency             string          `json:"currency"`
	Customer             monnifyCustomer `json:"customer"`
}

type monnifyBank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type monnifyAccount struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankCode      string `json:"bankCode"`
}

type MonnifyDisbursementRequest struct {
	Amount                   json.Number `json:"amount"`
	Reference                string      `json:"reference"`
	Narration                string      `json:"narration"`
	DestinationBankCode      string      `json:"destinationBankCode"`
	DestinationAccountNumber string      `json:"destinationAccountNumber"`
	Currency                 string      `json:"currency"`
	SourceAccountNumber      string      `json:"sourceAccountNumber"`
	Async                    bool        `json:"async"`
}

type monnifyDisbursement struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
}

type MonnifyInitRequest struct {
	Amount             json.Number `json:"amount"`
	CustomerName       string      `json:"customerName"`
	CustomerEmail      string      `json:"customerEmail"`
	PaymentReference   string      `json:"paymentReference"`
	PaymentDescription string      `json:"paymentDescription"`
	CurrencyCode       string      `json:"currencyCode"`
	ContractCode       string      `json:"contractCode"`
}

type monnifyInit struct {
	TransactionReference string `json:"transactionReference"`
	PaymentReference     string `json:"paymentReference"`
	CheckoutURL          string `json:"checkoutUrl"`
}

func monnifyPaymentStatus(s string) Status {
	switch s {
	case "PAID", "OVERPAID":
		return StatusSucceeded
	case "FAILED", "EXPIRED", "CANCELLED", "ABANDONED", "REVERSED":
		return StatusFailed
	default:
		return StatusPending
	}
}

func monnifyDisbursementStatus(s string) Status {
	switch s {
	case "SUCCESS":
		return StatusSucceeded
	case "FAILED", "REVERSED", "EXPIRED":
		return StatusFailed
	default:
		return StatusPending
	}
}
