// Package router decides which page a navigation attempt ends on.
//
// Guards are pure functions of a session snapshot. The Router never evaluates
// a guard before the session check has completed: Navigate blocks on the
// session's readiness signal, then reads a single snapshot and resolves the
// whole attempt against it.
package router

import "github.com/dmitrijs2005/rentkeeper/internal/client/session"

const (
	LoginPath   = "/auth/login"
	LandingPath = "/reservations"
)

// Decision is the outcome of one guard. The zero value allows.
type Decision struct {
	Target string
}

func Allow() Decision { return Decision{} }

func RedirectTo(target string) Decision { return Decision{Target: target} }

func (d Decision) Allowed() bool { return d.Target == "" }

func (d Decision) String() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect " + d.Target
}

// Guard inspects a snapshot and allows or redirects.
type Guard func(session.Snapshot) Decision

// RequiresAuth lets authenticated users through and sends everyone else to
// the login page.
func RequiresAuth(s session.Snapshot) Decision {
	if s.IsAuthenticated() {
		return Allow()
	}
	return RedirectTo(LoginPath)
}

// RequiresAnonymous keeps logged-in users away from the login, register and
// password reset pages. It redirects to the landing page, never to login.
func RequiresAnonymous(s session.Snapshot) Decision {
	if !s.IsAuthenticated() {
		return Allow()
	}
	return RedirectTo(LandingPath)
}
