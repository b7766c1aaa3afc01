package handler

import (
	"net/http"
	"time"

	"auth-bridge/internal/auth/provider"
	"auth-bridge/internal/flow"
	"auth-bridge/internal/session"

	"github.com/gin-gonic/gin"
)

// Options carry the presentation-level settings the handlers need.
type Options struct {
	SessionTTL   time.Duration
	CookieSecure bool
	// VerifyToken makes /set-session check the access token against the
	// provider before issuing a session.
	VerifyToken bool
}

type Handler struct {
	coordinator  *flow.Coordinator
	sessionStore session.Store
	idp          provider.Provider
	opts         Options
}

func NewHandler(
	coordinator *flow.Coordinator,
	sessionStore session.Store,
	idp provider.Provider,
	opts Options,
) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Handler{
		coordinator:  coordinator,
		sessionStore: sessionStore,
		idp:          idp,
		opts:         opts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/logout", h.Logout)
	r.POST("/set-session", h.SetSession)
}

func (h *Handler) cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// respondOutcome converts a flow outcome into the single response every
// attempt gets: a redirect target or a message with its severity.
func (h *Handler) respondOutcome(c *gin.Context, out flow.Outcome) {
	if out.IsRedirect() {
		if out.SessionID != "" {
			session.SetCookie(
				c.Writer,
				out.SessionID,
				time.Now().Add(h.opts.SessionTTL),
				h.cookieOptions(),
			)
		}
		c.JSON(http.StatusOK, gin.H{"redirect": out.RedirectPath})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  out.Message,
		"severity": string(out.Severity),
	})
}

// validationMessage answers a pre-flight validation failure. These never
// reach the coordinator.
func validationMessage(c *gin.Context, text string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message":  text,
		"severity": string(flow.SeverityError),
	})
}
