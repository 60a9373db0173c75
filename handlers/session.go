package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careercompass/backend/auth"
	"github.com/careercompass/backend/models"
)

// SessionHandler issues anonymous session tokens
type SessionHandler struct {
	jwtService *auth.JWTService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(jwtService *auth.JWTService) *SessionHandler {
	return &SessionHandler{
		jwtService: jwtService,
	}
}

// InitSession issues a session token for an anonymous visitor. Calling it
// with a still-valid token reissues a token for the same session, so a page
// reload does not orphan a profile bound to the old session.
// @Summary Start or renew an anonymous session
// @Tags Session
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 500 {object} models.ErrorResponse "Token generation failed"
// @Router /init-session [post]
func (h *SessionHandler) InitSession(c *gin.Context) {
	sessionID := auth.SessionID(c)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	token, err := h.jwtService.GenerateSessionToken(sessionID)
	if err != nil {
		log.Printf("[SessionHandler] Failed to generate session token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to start session",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		SessionID: sessionID,
		Token:     token,
	})
}
