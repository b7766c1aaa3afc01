package flow

import (
	"strings"

	"auth-bridge/internal/auth"
)

// DashboardPath is where both flows land after a fully established login.
const DashboardPath = "/dashboard"

const (
	// Login messages.
	MsgLoginInvalidCredentials = "Incorrect email or password."
	MsgLoginEmailNotConfirmed  = "Please confirm your email before logging in."
	MsgLoginFailed             = "Login failed. Please try again later."
	MsgLoginUnexpected         = "An unexpected error occurred during login."
	MsgLoginBackendRejected    = "Server-side login failed. Please try again."

	// Signup messages.
	MsgSignupAlreadyRegistered = "This email is already registered."
	MsgSignupPasswordTooShort  = "Password must be at least 6 characters."
	MsgSignupFailed            = "Signup failed. Please try again later."
	MsgSignupConfirmEmail      = "Account created. Check your email to confirm your account before logging in."
	MsgSignupConfirmPending    = "Please check your email to confirm your account before logging in."
	MsgSignupAutoLoginFailed   = "Account created, but automatic login failed. Please log in manually."
	MsgSignupManualLogin       = "Account created. You may need to log in manually."

	// Shared transport-failure message.
	MsgConnectionProblem = "Something went wrong. Check your connection and try again."
)

// loginMessage maps an explicit provider rejection of a login to the
// user-facing message. The match is on the provider's error text, which
// is the only stable signal GoTrue exposes.
func loginMessage(perr *auth.ProviderError) string {
	switch {
	case strings.Contains(perr.Message, "Invalid login credentials"):
		return MsgLoginInvalidCredentials
	case strings.Contains(perr.Message, "Email not confirmed"):
		return MsgLoginEmailNotConfirmed
	default:
		return MsgLoginFailed
	}
}

// signupMessage maps an explicit provider rejection of a signup to the
// user-facing message. The password-length match is case-insensitive;
// GoTrue versions differ in capitalization.
func signupMessage(perr *auth.ProviderError) string {
	switch {
	case strings.Contains(perr.Message, "User already registered"):
		return MsgSignupAlreadyRegistered
	case strings.Contains(strings.ToLower(perr.Message), "password should be at least 6 characters"):
		return MsgSignupPasswordTooShort
	default:
		return MsgSignupFailed
	}
}
