package api

import (
	"io"
	"net/http"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api/apistrings"
	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/gin-gonic/gin"
)

// Provider payloads are small; anything larger is not a real delivery.
const maxWebhookBody = 1 << 20

type Webhook struct {
	server *Server
}

func (w Webhook) router(server *Server) {
	w.server = server

	serverGroup := server.router.Group("/webhooks")
	serverGroup.POST("paystack", w.handle(providers.Paystack, webhook.PaystackSignatureHeader))
	serverGroup.POST("monnify", w.handle(providers.Monnify, webhook.MonnifySignatureHeader))
}

// handle verifies the raw body against the provider's signature header before
// anything is parsed.
func (w *Webhook) handle(provider, header string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.WebhookBodyUnreadable))
			return
		}

		result, err := w.server.services.Webhooks.Handle(ctx, provider, body, ctx.GetHeader(header))
		if err != nil {
			w.server.respondError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, models.NewSuccess("Webhook Received", gin.H{
			"event":     result.Event.Kind.String(),
			"reference": result.Event.Reference,
			"applied":   result.Applied,
		}))
	}
}
