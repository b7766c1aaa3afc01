package auth

import "time"

// Credentials carry one attempt's email and password. They live only for
// the duration of a single login or signup attempt and must never be
// persisted or logged.
type Credentials struct {
	Email    string
	Password string
}

// Identity is one provider-side identity attached to a user record.
// The coordinator only counts these; their contents stay opaque.
type Identity struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// UserRecord is the identity provider's user object. It contains facts
// only, no decisions. The coordinator inspects EmailConfirmedAt and the
// identity count; everything else is carried through to the session
// endpoint untouched.
type UserRecord struct {
	ID               string     `json:"id"`
	Aud              string     `json:"aud,omitempty"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	Identities       []Identity `json:"identities,omitempty"`
}

// Session is a provider session: the access token plus the user it was
// issued for.
type Session struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type,omitempty"`
	ExpiresIn   int         `json:"expires_in,omitempty"`
	User        *UserRecord `json:"user,omitempty"`
}

// SignupResult is the outcome of a successful provider sign-up. Session is
// nil unless the provider auto-confirmed the account and logged it in.
type SignupResult struct {
	Session *Session
	User    *UserRecord
}
