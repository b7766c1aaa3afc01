package provider

import (
	"context"

	"auth-bridge/internal/auth"
)

// Provider defines the contract for the external identity provider.
// Implementations return identity facts only and must not perform
// backend session management; that belongs to the flow coordinator
// and the session packages.
type Provider interface {
	// Name returns the provider identifier (e.g. "gotrue").
	Name() string

	// SignInWithPassword authenticates an email/password pair and returns
	// the provider session. An explicit rejection is returned as
	// *auth.ProviderError; any other error is a transport failure.
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error)

	// SignUp registers a new account. When the provider requires email
	// confirmation the result carries only the user record; when
	// auto-confirm is enabled it also carries a live session.
	SignUp(ctx context.Context, email, password string) (*auth.SignupResult, error)

	// SignOut revokes the given provider session. Callers treat it as
	// best-effort cleanup.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser returns the user the access token belongs to, or an error
	// if the token is not valid.
	GetUser(ctx context.Context, accessToken string) (*auth.UserRecord, error)
}
