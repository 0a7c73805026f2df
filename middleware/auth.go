package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/utils"
)

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's claims on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.Status, gin.H{
		"success": false,
		"error":   err.Message,
		"code":    err.Code,
	})
}
