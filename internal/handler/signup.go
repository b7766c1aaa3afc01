package handler

import (
	"net/http"

	"auth-bridge/internal/auth"
	"auth-bridge/internal/flow"

	"github.com/gin-gonic/gin"
)

const (
	msgSignupMissingFields    = "Please fill in all fields."
	msgSignupPasswordMismatch = "Passwords do not match."

	minPasswordLength = 6
)

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Pre-flight validation; violations short-circuit and never reach
	// the coordinator.
	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		validationMessage(c, msgSignupMissingFields)
		return
	}
	if req.Password != req.ConfirmPassword {
		validationMessage(c, msgSignupPasswordMismatch)
		return
	}
	if len(req.Password) < minPasswordLength {
		validationMessage(c, flow.MsgSignupPasswordTooShort)
		return
	}

	outcome := h.coordinator.AttemptSignup(
		c.Request.Context(),
		auth.Credentials{
			Email:    req.Email,
			Password: req.Password,
		},
	)

	h.respondOutcome(c, outcome)
}
