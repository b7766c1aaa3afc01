package handler

import (
	"net/http"
	"time"

	"auth-bridge/internal/auth"
	"auth-bridge/internal/logger"
	"auth-bridge/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type setSessionRequest struct {
	AccessToken string           `json:"access_token"`
	User        *auth.UserRecord `json:"user"`
}

// SetSession is the backend session endpoint: given a verified provider
// token and user record, it creates the application session and hands the
// session cookie to the caller. Any 2xx means established; a non-2xx
// body carries the rejection details.
func (h *Handler) SetSession(c *gin.Context) {
	var req setSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.AccessToken == "" || req.User == nil || req.User.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token or user data"})
		return
	}

	if _, err := uuid.Parse(req.User.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if h.opts.VerifyToken {
		if _, err := h.idp.GetUser(c.Request.Context(), req.AccessToken); err != nil {
			logger.Warn("set-session token verification failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.opts.SessionTTL)

	s := session.Session{
		SessionID:   sessionID,
		UserID:      req.User.ID,
		Email:       req.User.Email,
		Aud:         req.User.Aud,
		AccessToken: req.AccessToken,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	if err := h.sessionStore.Create(c.Request.Context(), s); err != nil {
		logger.Error("failed to persist session", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, h.cookieOptions())

	logger.Info("session established", map[string]any{
		"user_id": req.User.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Session created successfully"})
}
