package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-study-assistant/internal/pkg/sessiontoken"
	"ai-study-assistant/internal/transport/http/response"
)

const ContextSessionIDKey = "session_id"

// RequireSession verifies the anonymous session token and puts the session
// id on the request context. The token comes from the Authorization header
// or, for plain download links, the X-Session-Token header.
func RequireSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing session token")
			c.Abort()
			return
		}

		claims, err := sessiontoken.Parse(secret, raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired session token")
			c.Abort()
			return
		}

		c.Set(ContextSessionIDKey, claims.SessionID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(authHeader, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	}
	return strings.TrimSpace(c.GetHeader("X-Session-Token"))
}
