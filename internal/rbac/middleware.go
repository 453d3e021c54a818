package rbac

import (
	"log/slog"
	"net/http"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// Session is the authorization view of the current request's session.
// The session store implements it; the guard never mutates session state.
type Session interface {
	Authenticated() bool
	Granted() []Permission
}

// SessionSource extracts the session for a request. A nil session is
// treated as unauthenticated.
type SessionSource func(r *http.Request) Session

// Guard gates HTTP routes on authentication and required permissions.
type Guard struct {
	Sessions SessionSource
	Logger   *slog.Logger
	// LoginURL receives unauthenticated requests via a 303 redirect.
	// When empty the guard answers 401 instead.
	LoginURL string
	// Fallback, when set, renders the denied outcome in place of the
	// default 403 problem response.
	Fallback http.Handler
}

// Require ensures the session holds every listed permission. With no
// permissions listed, any authenticated session passes.
func (g Guard) Require(perms ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess Session
			if g.Sessions != nil {
				sess = g.Sessions(r)
			}
			authenticated := false
			var granted []Permission
			if sess != nil {
				authenticated = sess.Authenticated()
				granted = sess.Granted()
			}
			switch Evaluate(authenticated, granted, perms) {
			case DecisionAuthorized:
				next.ServeHTTP(w, r)
			case DecisionUnauthenticated:
				if g.LoginURL != "" {
					http.Redirect(w, r, g.LoginURL, http.StatusSeeOther)
					return
				}
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			case DecisionDenied:
				if g.Logger != nil {
					g.Logger.Warn("access denied", slog.String("path", r.URL.Path))
				}
				if g.Fallback != nil {
					g.Fallback.ServeHTTP(w, r)
					return
				}
				httpx.Problem(w, http.StatusForbidden, "Access Denied", "you do not have permission to view this resource")
			}
		})
	}
}
