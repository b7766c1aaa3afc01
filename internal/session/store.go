package session

import (
	"context"
	"time"
)

// Session is one established backend session. It mirrors what the
// original backend kept server-side after a verified provider login:
// the access token plus the identity fields needed to render for the
// user. The provider password never appears here.
type Session struct {
	SessionID   string    // unique session identifier
	UserID      string    // provider user id
	Email       string    // user email at login time
	Aud         string    // provider audience claim
	AccessToken string    // provider access token
	CreatedAt   time.Time // issue time
	ExpiresAt   time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved. Implementations
// must remain stateless and opaque; Get returns (nil, nil) when the
// session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
