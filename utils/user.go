package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetActiveUser(ctx *gin.Context) (TokenObject, error) {
	value, exists := ctx.Get("user")
	if !exists {
		return TokenObject{}, fmt.Errorf("error occurred, not authorized to access this resource")
	}

	user, ok := value.(TokenObject)
	if !ok {
		return TokenObject{}, fmt.Errorf("an error occurred")
	}

	return user, nil
}

// GetActiveUserID returns the authenticated user's id as a uuid.
func GetActiveUserID(ctx *gin.Context) (uuid.UUID, error) {
	user, err := GetActiveUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(user.UserID)
}
