package apistrings

const (
	/// Basic User Related Strings
	UserNotFound     = "user or account does not exist"
	Unauthorized     = "unauthorized request"
	InvalidBearer    = "invalid token, expects bearer token"
	AdminOnly        = "you are not allowed to perform this action"
	InvalidUserInput = "invalid user id"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	UserNoWallet          = "user does not have a wallet created"
	DuplicateWallet       = "user already has a wallet"
	CurrencyNotSupported  = "entered currency is not supported"
	InvalidWalletID       = "entered wallet ID is invalid"
	InvalidWalletStatus   = "check 'status' key, expects active or frozen"
	InvalidAdjustmentBody = "check 'currency', 'amount' or 'type' keys, invalid request"

	/// Transaction Related Strings
	InvalidDepositInput     = "check 'amount' or 'provider' keys, invalid request"
	InvalidWithdrawalInput  = "check 'amount', 'bank_code', 'account_number' or 'provider' keys, invalid request"
	InvalidAccountInput     = "check 'bank_code', 'account_number' or 'provider' keys, invalid request"
	InvalidConversionInput  = "check 'base', 'target' or 'amount' keys, invalid request"
	InvalidRateInput        = "check 'base' or 'target' keys, invalid request"
	InvalidFilter           = "invalid filter, check query parameters"
	InvalidRequestID        = "entered ID is invalid"
	AmountMustBePositive    = "amount must be greater than zero"
	ProviderNotSupported    = "entered provider is not supported"
	WebhookBodyUnreadable   = "could not read webhook body"
)
