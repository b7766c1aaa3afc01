package handler

import (
	"net/http"

	"auth-bridge/internal/auth"

	"github.com/gin-gonic/gin"
)

const msgLoginMissingFields = "Please enter your email and password."

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Email == "" || req.Password == "" {
		validationMessage(c, msgLoginMissingFields)
		return
	}

	outcome := h.coordinator.AttemptLogin(
		c.Request.Context(),
		auth.Credentials{
			Email:    req.Email,
			Password: req.Password,
		},
	)

	h.respondOutcome(c, outcome)
}
