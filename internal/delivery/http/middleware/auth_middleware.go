package middleware

import (
	"net/http"
	"strings"

	"candidate-voting-backend/internal/delivery/http/response"
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/audit"
	"candidate-voting-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	msgNoToken     = "Not authorized, no token"
	msgTokenFailed = "Not authorized, token failed"
	msgNotAdmin    = "Not authorized as an admin"
)

// AuthMiddleware admits requests carrying a valid admin bearer token.
func AuthMiddleware(tokens *auth.TokenManager, auditLog *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, auditLog, http.StatusUnauthorized, msgNoToken, "missing_token")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			deny(c, auditLog, http.StatusUnauthorized, msgTokenFailed, err.Error())
			return
		}
		if !claims.IsAdmin {
			deny(c, auditLog, http.StatusForbidden, msgNotAdmin, "not_admin")
			return
		}

		c.Set(string(domain.KeyAccountID), claims.ID)
		c.Set(string(domain.KeyIsAdmin), claims.IsAdmin)
		c.Request = c.Request.WithContext(audit.WithAccount(c.Request.Context(), claims.ID))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func deny(c *gin.Context, auditLog *audit.Logger, code int, message, reason string) {
	auditLog.UnauthorizedAccess(c.Request.Context(), c.Request.URL.Path, reason)
	response.Error(c, code, message)
	c.Abort()
}
