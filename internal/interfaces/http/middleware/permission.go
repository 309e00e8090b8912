package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// Permissions granted by the identity service and checked on refund routes.
const (
	PermRefundApprove = "refund:approve"
	PermPolicyWrite   = "refund_policy:write"
)

// RequirePermission rejects callers whose token does not grant permission.
// Must run after JWTAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"Missing permission "+permission,
				c.GetString(RequestIDKey),
			))
			return
		}
		c.Next()
	}
}
