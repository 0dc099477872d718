package fiat

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type paystackCustomer struct {
	Email string `json:"email"`
}

type paystackTransaction struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	Amount    int64            `json:"amount"`
	Currency  string           `json:"currency"`
	Status    string           `json:"status"`
	Customer  paystackCustomer `json:"customer"`
}

type paystackBank struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Code             string `json:"code"`
	Active           bool   `json:"active"`
	SupportsTransfer bool   `json:"supports_transfer"`
	Currency         string `json:"currency"`
}

type paystackAccount struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankID        int64  `json:"bank_id"`
}

type CreateTransferRecipientRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Currency      string `json:"currency"`
}

type Recipient struct {
	Active        bool   `json:"active"`
	Currency      string `json:"currency"`
	Name          string `json:"name"`
	RecipientCode string `json:"recipient_code"`
	Type          string `json:"type"`
}

type TransferRequest struct {
	Source    string `json:"source"`
	Reason    string `json:"reason"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reference string `json:"reference"`
	Currency  string `json:"currency"`
}

type TransferResponse struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Reference    string `json:"reference"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	TransferCode string `json:"transfer_code"`
}

type InitializeTransactionRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Currency  string `json:"currency,omitempty"`
}

type InitializeTransactionResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

func paystackTransactionStatus(s string) Status {
	switch s {
	case "success":
		return StatusSucceeded
	case "failed", "abandoned", "reversed":
		return StatusFailed
	default:
		return StatusPending
	}
}

func paystackTransferStatus(s string) Status {
	switch s {
	case "success":
		return StatusSucceeded
	case "failed", "reversed", "rejected", "abandoned":
		return StatusFailed
	default:
		return StatusPending
	}
}
