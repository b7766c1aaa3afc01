package handler

import (
	"net/http"

	"auth-bridge/internal/logger"
	"auth-bridge/internal/session"

	"github.com/gin-gonic/gin"
)

// Logout tears down the backend session. Provider sign-out stays the
// client's responsibility, as in the original backend.
func (h *Handler) Logout(c *gin.Context) {
	// 1. Read session cookie (same pattern as auth middleware)
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// 2. Delete session from store (best-effort)
		_ = h.sessionStore.Delete(c.Request.Context(), cookie.Value)
		logger.Info("session deleted", map[string]any{
			"ip": c.ClientIP(),
		})
	}

	// 3. Clear cookie
	session.ClearCookie(c.Writer, h.cookieOptions())

	// 4. Idempotent response
	c.Status(http.StatusNoContent)
}
