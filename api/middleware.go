package api

import (
	"net/http"
	"strings"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api/apistrings"
	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/gin-gonic/gin"
)

func AuthenticatedMiddleware(token *utils.JWTToken) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(apistrings.Unauthorized))
			return
		}

		tokenSplit := strings.Split(header, " ")
		if len(tokenSplit) != 2 || strings.ToLower(tokenSplit[0]) != "bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(apistrings.InvalidBearer))
			return
		}

		user, err := token.VerifyToken(tokenSplit[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(err.Error()))
			return
		}

		ctx.Set("user_id", user.UserID)
		ctx.Set("user_role", user.Role)
		/// Accessible User Across the App
		ctx.Set("user", user)
		ctx.Next()
	}
}

// AdminMiddleware must run after AuthenticatedMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(apistrings.Unauthorized))
			return
		}
		if !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, models.NewError(apistrings.AdminOnly))
			return
		}
		ctx.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST,HEAD,PATCH,OPTIONS,GET,PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
