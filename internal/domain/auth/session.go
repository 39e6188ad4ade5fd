package auth

// State is a point-in-time snapshot of a session.
// Identity is nil when nobody is logged in.
type State struct {
	Identity      Identity
	Transitioning bool
}

// Authenticated reports whether an identity is present.
func (s State) Authenticated() bool { return s.Identity != nil }

// Decision is the outcome of the access gate for a protected view.
type Decision int

const (
	// DecisionPending means the session is still transitioning; show a loading indicator.
	DecisionPending Decision = iota
	// DecisionPermit means the protected view may render.
	DecisionPermit
	// DecisionRedirectToLogin means the caller must send the user to the login view.
	DecisionRedirectToLogin
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionPermit:
		return "permit"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	default:
		return "unknown"
	}
}

// Authorize decides whether a protected view may render for the given state.
// It never permits or redirects while the session is transitioning.
func Authorize(s State) Decision {
	if s.Transitioning {
		return DecisionPending
	}
	if s.Identity != nil {
		return DecisionPermit
	}
	return DecisionRedirectToLogin
}
