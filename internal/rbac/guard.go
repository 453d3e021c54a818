package rbac

// Decision is the outcome of a route-guard evaluation.
type Decision int

const (
	// DecisionUnauthenticated means no user is logged in; the caller
	// should send the client to the login view.
	DecisionUnauthenticated Decision = iota
	// DecisionDenied means a user is logged in but lacks at least one
	// required permission; the caller renders fallback content.
	DecisionDenied
	// DecisionAuthorized means the guarded content may be served.
	DecisionAuthorized
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionDenied:
		return "denied"
	case DecisionAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Evaluate projects session state plus a route's required permissions onto
// a guard decision. It is pure and holds no state of its own, so callers
// must re-evaluate on every request; a permission change takes effect on
// the very next check.
//
// An empty requirement list authorizes any authenticated session: the
// vacuous-truth convention of HasAllRolePermissions propagates here, so a
// route declaring no permissions is reachable by anyone logged in.
func Evaluate(authenticated bool, granted []Permission, required []Permission) Decision {
	if !authenticated {
		return DecisionUnauthenticated
	}
	if len(required) == 0 {
		return DecisionAuthorized
	}
	set := make(map[Permission]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; !ok {
			return DecisionDenied
		}
	}
	return DecisionAuthorized
}
