package flow

// State is the coordinator's position within one authentication attempt.
// Every attempt starts from StateIdle; StateSessionEstablished and the
// terminal-message states (reported through the returned Outcome) end it.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateProviderAuthenticated
	StateSessionEstablished
	StateCompensatingSignOut
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateProviderAuthenticated:
		return "provider_authenticated"
	case StateSessionEstablished:
		return "session_established"
	case StateCompensatingSignOut:
		return "compensating_sign_out"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateListener observes per-attempt state transitions. Presentation
// layers subscribe here (e.g. to toggle a submit control) instead of the
// coordinator reaching into them.
type StateListener func(State)
