package auth

import "fmt"

// ProviderError is an explicit rejection from the identity provider
// (invalid credentials, duplicate signup, ...). Anything else returned by
// a provider call is a transport failure.
type ProviderError struct {
	Status  int    // HTTP status of the provider response
	Code    string // provider error code, when present
	Message string // provider error text, used for user-message mapping
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider rejected request (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("provider rejected request (%d): %s", e.Status, e.Message)
}

// SessionRejectedError is an explicit non-2xx answer from the backend
// session endpoint. It is distinct from a transport failure: only an
// explicit rejection triggers the compensating provider sign-out.
type SessionRejectedError struct {
	Status  int
	Details string
}

func (e *SessionRejectedError) Error() string {
	return fmt.Sprintf("session endpoint rejected request (%d): %s", e.Status, e.Details)
}
