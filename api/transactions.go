package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api/apistrings"
	apimodels "github.com/SwiftFiat/SwiftFiat-Ledger/api/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Transaction struct {
	server *Server
}

func (t Transaction) router(server *Server) {
	t.server = server

	auth := AuthenticatedMiddleware(server.token)
	admin := AdminMiddleware()

	serverGroupV1 := server.router.Group("/api/v1/transactions", auth)
	serverGroupV1.GET("", admin, t.listAllTransactions)
	serverGroupV1.GET("user", t.listUserTransactions)
	serverGroupV1.GET("user/:reference", t.getUserTransaction)
	serverGroupV1.GET("banks", t.listBanks)

	serverGroupV1.POST("deposit/initiate", t.initiateDeposit)
	serverGroupV1.POST("deposit/verify/:provider/:reference", t.verifyDeposit)
	serverGroupV1.POST("deposit/cancel/:reference", t.cancelDeposit)

	serverGroupV1.POST("account/validate", t.validateAccount)
	serverGroupV1.POST("withdrawal/initiate", t.initiateWithdrawal)
	serverGroupV1.GET("withdrawal-requests", admin, t.listAllWithdrawalRequests)
	serverGroupV1.GET("withdrawal-requests/user", t.listUserWithdrawalRequests)
	serverGroupV1.PUT("withdrawal-requests/:id/approve", admin, t.approveWithdrawal)
	serverGroupV1.PUT("withdrawal-requests/:id/reject", admin, t.rejectWithdrawal)

	serverGroupV1.POST("convert", t.convert)
	serverGroupV1.POST("fx/rates", t.getRate)
}

func (t *Transaction) provider(requested string) string {
	if requested == "" {
		return t.server.config.DefaultFiatProvider
	}
	return strings.ToUpper(requested)
}

type transactionQuery struct {
	UserID    string `form:"user_id"`
	WalletID  string `form:"wallet_id"`
	Status    string `form:"status"`
	Type      string `form:"type"`
	Currency  string `form:"currency"`
	Reference string `form:"reference"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int32  `form:"page"`
	PageSize  int32  `form:"page_size"`
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// filter converts the query into a service filter. The end date is
// inclusive of the whole day.
func (q transactionQuery) filter() (transaction.TransactionFilter, error) {
	f := transaction.TransactionFilter{
		Status:    strings.ToUpper(q.Status),
		Type:      strings.ToUpper(q.Type),
		Currency:  strings.ToUpper(q.Currency),
		Reference: q.Reference,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}

	var err error
	if f.UserID, err = parseOptionalUUID(q.UserID); err != nil {
		return f, err
	}
	if f.WalletID, err = parseOptionalUUID(q.WalletID); err != nil {
		return f, err
	}
	if f.StartDate, err = parseDate(q.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate(q.EndDate); err != nil {
		return f, err
	}
	if f.EndDate != nil {
		end := f.EndDate.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, errors.New("end_date is before start_date")
	}
	return f, nil
}

func (t *Transaction) listTransactions(ctx *gin.Context, f transaction.TransactionFilter) {
	items, total, err := t.server.services.Transactions.ListTransactions(ctx, f)
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	page, size := transaction.NormalizePage(f.Page, f.PageSize)
	ctx.JSON(http.StatusOK, models.NewSuccess("Transactions Fetched Successfully", apimodels.Page{
		Items:    apimodels.ToTransactionCollection(items),
		Total:    total,
		Page:     page,
		PageSize: size,
	}))
}

func (t *Transaction) listAllTransactions(ctx *gin.Context) {
	var query transactionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}
	f, err := query.filter()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}
	t.listTransactions(ctx, f)
}

func (t *Transaction) listUserTransactions(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	var query transactionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}
	query.UserID, query.WalletID = "", ""
	f, err := query.filter()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}
	f.UserID = &userID
	t.listTransactions(ctx, f)
}

func (t *Transaction) getUserTransaction(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	tx, err := t.server.services.Transactions.GetTransaction(ctx, userID, ctx.Param("reference"))
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Transaction Fetched Successfully", apimodels.ToTransactionResponse(tx)))
}

func (t *Transaction) listBanks(ctx *gin.Context) {
	banks, err := t.server.services.Transactions.ListBanks(ctx, t.provider(ctx.Query("provider")))
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Banks Fetched Successfully", banks))
}

func (t *Transaction) initiateDeposit(ctx *gin.Context) {
	request := struct {
		Amount   decimal.Decimal `json:"amount"`
		Provider string          `json:"provider" binding:"omitempty,fiatprovider"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidDepositInput))
		return
	}
	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountMustBePositive))
		return
	}

	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	result, err := t.server.services.Transactions.InitiateDeposit(ctx, userID, transaction.DepositRequest{
		Amount:   request.Amount,
		Provider: t.provider(request.Provider),
	})
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	resp := apimodels.DepositResponse{Transaction: apimodels.ToTransactionResponse(&result.Transaction)}
	if result.Handle != nil {
		resp.AuthorizationURL = result.Handle.CheckoutURL
		resp.AccessCode = result.Handle.AccessCode
	}
	ctx.JSON(http.StatusOK, models.NewSuccess("Deposit Initiated Successfully", resp))
}

func (t *Transaction) verifyDeposit(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	provider := ctx.Param("provider")
	if !validProviderName(provider) {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.ProviderNotSupported))
		return
	}

	result, err := t.server.services.Transactions.VerifyDeposit(ctx, userID, strings.ToUpper(provider), ctx.Param("reference"))
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	resp := apimodels.VerifyResponse{Status: result.Status}
	if result.Transaction != nil {
		resp.Transaction = apimodels.ToTransactionResponse(result.Transaction)
	}
	ctx.JSON(http.StatusOK, models.NewSuccess("Deposit Verification Completed", resp))
}

func (t *Transaction) cancelDeposit(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	tx, err := t.server.services.Transactions.CancelDeposit(ctx, userID, ctx.Param("reference"))
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Deposit Cancelled Successfully", apimodels.ToTransactionResponse(tx)))
}

func (t *Transaction) validateAccount(ctx *gin.Context) {
	request := struct {
		Provider      string `json:"provider" binding:"omitempty,fiatprovider"`
		BankCode      string `json:"bank_code" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required,numeric,len=10"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidAccountInput))
		return
	}

	info, err := t.server.services.Transactions.ValidateAccount(ctx, t.provider(request.Provider), request.BankCode, request.AccountNumber)
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Account Validated Successfully", apimodels.ToAccountResponse(info)))
}

func withdrawalResponse(result *transaction.WithdrawalResult) apimodels.WithdrawalResponse {
	return apimodels.WithdrawalResponse{
		Transaction: apimodels.ToTransactionResponse(&result.Transaction),
		Request:     apimodels.ToWithdrawalRequestResponse(&result.Request),
	}
}

func (t *Transaction) initiateWithdrawal(ctx *gin.Context) {
	request := struct {
		Amount        decimal.Decimal `json:"amount"`
		BankCode      string          `json:"bank_code" binding:"required"`
		AccountNumber string          `json:"account_number" binding:"required,numeric,len=10"`
		Provider      string          `json:"provider" binding:"omitempty,fiatprovider"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidWithdrawalInput))
		return
	}
	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountMustBePositive))
		return
	}

	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	result, err := t.server.services.Transactions.InitiateWithdrawal(ctx, userID, transaction.WithdrawalInput{
		Amount:        request.Amount,
		BankCode:      request.BankCode,
		AccountNumber: request.AccountNumber,
		Provider:      t.provider(request.Provider),
	})
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Withdrawal Request Submitted Successfully", withdrawalResponse(result)))
}

type withdrawalQuery struct {
	UserID   string `form:"user_id"`
	Status   string `form:"status"`
	Page     int32  `form:"page"`
	PageSize int32  `form:"page_size"`
}

func (t *Transaction) listWithdrawalRequests(ctx *gin.Context, f transaction.WithdrawalFilter) {
	items, total, err := t.server.services.Transactions.ListWithdrawalRequests(ctx, f)
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	page, size := transaction.NormalizePage(f.Page, f.PageSize)
	ctx.JSON(http.StatusOK, models.NewSuccess("Withdrawal Requests Fetched Successfully", apimodels.Page{
		Items:    apimodels.ToWithdrawalRequestCollection(items),
		Total:    total,
		Page:     page,
		PageSize: size,
	}))
}

func (t *Transaction) listAllWithdrawalRequests(ctx *gin.Context) {
	var query withdrawalQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}
	userID, err := parseOptionalUUID(query.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}

	t.listWithdrawalRequests(ctx, transaction.WithdrawalFilter{
		UserID:   userID,
		Status:   strings.ToUpper(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}

func (t *Transaction) listUserWithdrawalRequests(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	var query withdrawalQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidFilter))
		return
	}

	t.listWithdrawalRequests(ctx, transaction.WithdrawalFilter{
		UserID:   &userID,
		Status:   strings.ToUpper(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}

func (t *Transaction) approveWithdrawal(ctx *gin.Context) {
	t.processWithdrawal(ctx, t.server.services.Transactions.ApproveWithdrawal, "Withdrawal Approved Successfully")
}

func (t *Transaction) rejectWithdrawal(ctx *gin.Context) {
	t.processWithdrawal(ctx, t.server.services.Transactions.RejectWithdrawal, "Withdrawal Rejected Successfully")
}

// processWithdrawal runs an admin decision on a request. A provider decline
// still refunds the wallet, so the refunded request is returned with the error.
func (t *Transaction) processWithdrawal(ctx *gin.Context, action func(context.Context, uuid.UUID, uuid.UUID) (*transaction.WithdrawalResult, error), message string) {
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidRequestID))
		return
	}

	adminID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	result, err := action(ctx, requestID, adminID)
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess(message, withdrawalResponse(result)))
}

func (t *Transaction) convert(ctx *gin.Context) {
	request := struct {
		Base   string          `json:"base" binding:"required,currency"`
		Target string          `json:"target" binding:"required,currency"`
		Amount decimal.Decimal `json:"amount"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidConversionInput))
		return
	}
	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountMustBePositive))
		return
	}

	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	conversion, err := t.server.services.Currency.Convert(ctx, userID, currency.ConvertRequest{
		Base:   strings.ToUpper(request.Base),
		Target: strings.ToUpper(request.Target),
		Amount: request.Amount,
	})
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Conversion Completed Successfully", apimodels.ConversionResponse{
		Rate:         conversion.Rate,
		TargetAmount: conversion.TargetAmount,
		Debit:        apimodels.ToTransactionResponse(&conversion.Debit),
		Credit:       apimodels.ToTransactionResponse(&conversion.Credit),
	}))
}

func (t *Transaction) getRate(ctx *gin.Context) {
	request := struct {
		Base   string `json:"base" binding:"required,currency"`
		Target string `json:"target" binding:"required,currency"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidRateInput))
		return
	}

	base, target := strings.ToUpper(request.Base), strings.ToUpper(request.Target)
	rate, err := t.server.services.Currency.GetPairRate(ctx, base, target)
	if err != nil {
		t.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Rate Fetched Successfully", apimodels.RateResponse{
		Base:   base,
		Target: target,
		Rate:   rate,
	}))
}
