package flow

// Severity classifies a user-facing message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Outcome is the single externally observable result of one attempt:
// either a redirect or a user-facing message, never both. SessionID is
// set on redirect outcomes when the establisher surfaced the issued
// backend session, so the caller can hand it to the client.
type Outcome struct {
	RedirectPath string
	Message      string
	Severity     Severity
	SessionID    string
}

// IsRedirect reports whether the attempt ended in a navigation rather
// than a message.
func (o Outcome) IsRedirect() bool {
	return o.RedirectPath != ""
}

func redirectTo(path, sessionID string) Outcome {
	return Outcome{RedirectPath: path, SessionID: sessionID}
}

func errorMessage(text string) Outcome {
	return Outcome{Message: text, Severity: SeverityError}
}

func successMessage(text string) Outcome {
	return Outcome{Message: text, Severity: SeveritySuccess}
}
