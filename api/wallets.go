package api

import (
	"net/http"
	"strings"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api/apistrings"
	apimodels "github.com/SwiftFiat/SwiftFiat-Ledger/api/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	server *Server
}

func (w Wallet) router(server *Server) {
	w.server = server

	auth := AuthenticatedMiddleware(server.token)
	serverGroupV1 := server.router.Group("/api/v1/wallets")
	serverGroupV1.GET("", auth, w.getUserWallet)
	serverGroupV1.POST("", auth, w.createWallet)
	serverGroupV1.POST(":id/adjust", auth, AdminMiddleware(), w.adjustBalance)
	serverGroupV1.PUT(":id/status", auth, AdminMiddleware(), w.setStatus)
}

func (w *Wallet) getUserWallet(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	wallet, err := w.server.services.Wallets.GetWalletByUser(ctx, userID)
	if err != nil {
		w.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("User Wallet Fetched Successfully", wallet))
}

func (w *Wallet) createWallet(ctx *gin.Context) {
	userID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	if _, err := w.server.services.Users.FindUserByID(ctx, userID); err != nil {
		w.server.respondError(ctx, err)
		return
	}

	wallet, err := w.server.services.Wallets.CreateWallet(ctx, userID)
	if err != nil {
		w.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, models.NewSuccess("User Wallet Created Successfully", wallet))
}

func (w *Wallet) adjustBalance(ctx *gin.Context) {
	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidWalletID))
		return
	}

	request := struct {
		Currency string          `json:"currency" binding:"required,currency"`
		Amount   decimal.Decimal `json:"amount"`
		Type     string          `json:"type" binding:"required,oneof=credit debit"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidAdjustmentBody))
		return
	}
	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountMustBePositive))
		return
	}

	adminID, err := utils.GetActiveUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.UserNotFound))
		return
	}

	tx, err := w.server.services.Transactions.AdminAdjust(ctx, transaction.AdminAdjustment{
		WalletID: walletID,
		Currency: strings.ToUpper(request.Currency),
		Amount:   request.Amount,
		Credit:   request.Type == "credit",
		AdminID:  adminID,
	})
	if err != nil {
		w.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Wallet Adjusted Successfully", apimodels.ToTransactionResponse(tx)))
}

func (w *Wallet) setStatus(ctx *gin.Context) {
	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidWalletID))
		return
	}

	request := struct {
		Status string `json:"status" binding:"required,oneof=active frozen"`
	}{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidWalletStatus))
		return
	}

	wallet, err := w.server.services.Wallets.SetStatus(ctx, walletID, request.Status)
	if err != nil {
		w.server.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.NewSuccess("Wallet Status Updated Successfully", wallet))
}
