package session

import (
	"context"
	"fmt"
	"time"

	"auth-bridge/internal/auth"
)

// Issuer establishes backend sessions directly against the session store.
// It is the in-process counterpart of the remote /set-session endpoint
// client, used when auth-bridge issues its own sessions. Failures that
// the remote endpoint would answer with a non-2xx come back as
// *auth.SessionRejectedError so the flow coordinator treats both
// implementations alike.
type Issuer struct {
	store Store
	ttl   time.Duration
}

func NewIssuer(store Store, ttl time.Duration) *Issuer {
	return &Issuer{
		store: store,
		ttl:   ttl,
	}
}

func (i *Issuer) Establish(
	ctx context.Context,
	accessToken string,
	user *auth.UserRecord,
) (string, error) {

	if accessToken == "" || user == nil || user.ID == "" {
		return "", &auth.SessionRejectedError{
			Status:  400,
			Details: "missing token or user data",
		}
	}

	sessionID, err := GenerateID()
	if err != nil {
		return "", fmt.Errorf("session id generation failed: %w", err)
	}

	now := time.Now()
	s := Session{
		SessionID:   sessionID,
		UserID:      user.ID,
		Email:       user.Email,
		Aud:         user.Aud,
		AccessToken: accessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(i.ttl),
	}

	if err := i.store.Create(ctx, s); err != nil {
		return "", &auth.SessionRejectedError{
			Status:  500,
			Details: "failed to persist session",
		}
	}

	return sessionID, nil
}
