package flow

import (
	"context"
	"errors"

	"auth-bridge/internal/auth"
	"auth-bridge/internal/auth/provider"
	"auth-bridge/internal/logger"
)

// Establisher asks the backend to create an application-level session for
// a verified provider session. It returns the issued session ID when the
// backend exposes one. An explicit rejection is returned as
// *auth.SessionRejectedError; any other error is a transport failure.
type Establisher interface {
	Establish(ctx context.Context, accessToken string, user *auth.UserRecord) (sessionID string, err error)
}

// Coordinator drives one authentication attempt end to end: identity-
// provider authentication, then backend session establishment, with a
// compensating provider sign-out when the backend explicitly rejects the
// session after a successful login. Both network calls are strictly
// sequential; no retry and no timeout of its own. Every failure is
// terminal for the attempt and a new attempt always restarts from idle.
type Coordinator struct {
	provider provider.Provider
	backend  Establisher
	listener StateListener
}

type Option func(*Coordinator)

// WithStateListener registers an observer for per-attempt state
// transitions.
func WithStateListener(l StateListener) Option {
	return func(c *Coordinator) {
		c.listener = l
	}
}

func New(p provider.Provider, backend Establisher, opts ...Option) *Coordinator {
	c := &Coordinator{
		provider: p,
		backend:  backend,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) transition(s State) {
	if c.listener != nil {
		c.listener(s)
	}
}

// AttemptLogin runs one login attempt and produces exactly one Outcome.
// Preconditions (both credential fields non-empty) are the caller's job;
// an attempt that reaches here always hits the provider.
func (c *Coordinator) AttemptLogin(ctx context.Context, creds auth.Credentials) Outcome {
	c.transition(StateIdle)
	c.transition(StateSubmitting)

	session, err := c.provider.SignInWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		c.transition(StateFailed)

		var perr *auth.ProviderError
		if errors.As(err, &perr) {
			logger.Warn("provider rejected login", map[string]any{
				"provider": c.provider.Name(),
				"status":   perr.Status,
			})
			return errorMessage(loginMessage(perr))
		}

		logger.Error("provider sign-in unreachable", map[string]any{
			"provider": c.provider.Name(),
			"error":    err.Error(),
		})
		return errorMessage(MsgConnectionProblem)
	}

	// The provider is not expected to return a success without a token
	// and user, but handle it rather than trusting it.
	if session == nil || session.AccessToken == "" || session.User == nil {
		c.transition(StateFailed)
		logger.Error("provider sign-in returned incomplete session", map[string]any{
			"provider": c.provider.Name(),
		})
		return errorMessage(MsgLoginUnexpected)
	}

	c.transition(StateProviderAuthenticated)

	sessionID, err := c.backend.Establish(ctx, session.AccessToken, session.User)
	if err != nil {
		var rejected *auth.SessionRejectedError
		if errors.As(err, &rejected) {
			// The provider believes the user is signed in but the backend
			// does not. Reverse the provider side before reporting failure.
			c.transition(StateCompensatingSignOut)
			if signOutErr := c.provider.SignOut(ctx, session.AccessToken); signOutErr != nil {
				logger.Warn("compensating sign-out failed", map[string]any{
					"provider": c.provider.Name(),
					"error":    signOutErr.Error(),
				})
			}
			c.transition(StateFailed)
			logger.Warn("backend rejected session", map[string]any{
				"status": rejected.Status,
			})
			return errorMessage(MsgLoginBackendRejected)
		}

		// Transport failure is not an explicit rejection and is not
		// compensated.
		c.transition(StateFailed)
		logger.Error("session endpoint unreachable", map[string]any{
			"error": err.Error(),
		})
		return errorMessage(MsgConnectionProblem)
	}

	c.transition(StateSessionEstablished)
	return redirectTo(DashboardPath, sessionID)
}

// AttemptSignup runs one signup attempt and produces exactly one Outcome.
// Field presence, the confirm-password match, and the minimum length are
// the caller's job; an attempt that reaches here always hits the provider.
func (c *Coordinator) AttemptSignup(ctx context.Context, creds auth.Credentials) Outcome {
	c.transition(StateIdle)
	c.transition(StateSubmitting)

	result, err := c.provider.SignUp(ctx, creds.Email, creds.Password)
	if err != nil {
		c.transition(StateFailed)

		var perr *auth.ProviderError
		if errors.As(err, &perr) {
			logger.Warn("provider rejected signup", map[string]any{
				"provider": c.provider.Name(),
				"status":   perr.Status,
			})
			return errorMessage(signupMessage(perr))
		}

		logger.Error("provider sign-up unreachable", map[string]any{
			"provider": c.provider.Name(),
			"error":    err.Error(),
		})
		return errorMessage(MsgConnectionProblem)
	}

	c.transition(StateProviderAuthenticated)

	user := result.User
	if user == nil && result.Session != nil {
		user = result.Session.User
	}

	switch {
	case user != nil && user.EmailConfirmedAt == nil && len(user.Identities) == 0:
		// Brand-new account waiting for email confirmation. No session
		// exists, so there is nothing to establish.
		return successMessage(MsgSignupConfirmEmail)

	case result.Session != nil && result.Session.AccessToken != "" && user != nil:
		// Auto-confirmed signup: proceed like a login. Note the observed
		// asymmetry with the login flow: a backend rejection here is NOT
		// compensated with a provider sign-out.
		return c.establishAfterSignup(ctx, result.Session.AccessToken, user)

	case user != nil && user.EmailConfirmedAt == nil:
		// Pre-existing account that never confirmed its email.
		return successMessage(MsgSignupConfirmPending)

	default:
		return successMessage(MsgSignupManualLogin)
	}
}

func (c *Coordinator) establishAfterSignup(
	ctx context.Context,
	accessToken string,
	user *auth.UserRecord,
) Outcome {

	sessionID, err := c.backend.Establish(ctx, accessToken, user)
	if err != nil {
		c.transition(StateFailed)

		var rejected *auth.SessionRejectedError
		if errors.As(err, &rejected) {
			logger.Warn("backend rejected session after signup", map[string]any{
				"status": rejected.Status,
			})
			return errorMessage(MsgSignupAutoLoginFailed)
		}

		logger.Error("session endpoint unreachable after signup", map[string]any{
			"error": err.Error(),
		})
		return errorMessage(MsgConnectionProblem)
	}

	c.transition(StateSessionEstablished)
	return redirectTo(DashboardPath, sessionID)
}
