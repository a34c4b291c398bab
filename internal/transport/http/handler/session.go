package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ai-study-assistant/internal/pkg/sessiontoken"
	"ai-study-assistant/internal/transport/http/response"
)

type SessionHandler struct {
	secret string
	ttl    time.Duration
}

func NewSessionHandler(secret string, ttl time.Duration) *SessionHandler {
	return &SessionHandler{secret: secret, ttl: ttl}
}

// Create issues a fresh anonymous session token. The browser calls this once
// per visit and sends the token with every generate/history/export request.
func (h *SessionHandler) Create(c *gin.Context) {
	sessionID := uuid.NewString()
	token, err := sessiontoken.New(h.secret, sessionID, h.ttl)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		return
	}
	response.OK(c, gin.H{
		"session_id": sessionID,
		"token":      token,
		"expires_at": time.Now().Add(h.ttl).UTC(),
	})
}
