// Package guard decides whether a protected view renders or redirects.
// The decision is a pure function of the session snapshot at evaluation
// time; there is no retry loop, a later navigation re-evaluates from
// scratch.
package guard

import (
	"github.com/cycks/loftier-cli/internal/session"
)

// Entry points and dashboard areas.
const (
	HomePath            = "/"
	LoginPath           = session.LoginPath
	AdminDashboardPath  = "/admin-dashboard"
	AuthorDashboardPath = "/authors-dashboard"
	DashboardPath       = "/dashboard"
)

// Default messages carried on redirects.
const (
	loginPromptMessage      = "Please log in to access this page."
	permissionDeniedMessage = "You do not have permission to view that page."
)

// Decision is the guard's verdict for one evaluation.
type Decision int

const (
	// Wait means session restoration is still pending: show a waiting
	// indicator, neither render nor redirect yet.
	Wait Decision = iota
	// Allow renders the guarded content.
	Allow
	// RedirectLogin sends an unauthenticated visitor to the login entry
	// point, carrying the attempted destination and a message.
	RedirectLogin
	// RedirectHome sends an authenticated visitor without the required
	// role to the public entry point.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "wait"
	}
}

// Result carries the decision and, for redirects, where to go and why.
type Result struct {
	Decision Decision
	// Target is the redirect destination.
	Target string
	// From is the attempted destination, preserved so the login flow
	// can return the visitor afterward.
	From string
	// Message explains the redirect to the next rendered page.
	Message string
}

// Session is the store surface the guard reads.
type Session interface {
	Snapshot() session.Snapshot
	Notices() *session.Notices
}

// Guard gates rendering of protected views against the session store.
type Guard struct {
	session Session
}

func New(s Session) *Guard {
	return &Guard{session: s}
}

// Evaluate decides whether the view at from renders. An empty
// requiredRole admits any authenticated user; otherwise the user's role
// must match requiredRole or be superadmin.
func (g *Guard) Evaluate(from string, requiredRole session.Role) Result {
	snap := g.session.Snapshot()

	if snap.Restoring {
		return Result{Decision: Wait, From: from}
	}

	if !snap.Authenticated {
		message, ok := g.session.Notices().Take(session.NoticeAuthMessage)
		if !ok {
			message = loginPromptMessage
		}
		return Result{
			Decision: RedirectLogin,
			Target:   LoginPath,
			From:     from,
			Message:  message,
		}
	}

	if requiredRole != "" {
		role := snap.Role()
		if role != requiredRole && role != session.RoleSuperadmin {
			return Result{
				Decision: RedirectHome,
				Target:   HomePath,
				From:     from,
				Message:  permissionDeniedMessage,
			}
		}
	}

	return Result{Decision: Allow, From: from}
}

// LandingPath maps a role to its dashboard area, used by login-success
// redirection and dashboard entry selection.
func LandingPath(role session.Role) string {
	switch role {
	case session.RoleAuthor:
		return AuthorDashboardPath
	case session.RoleAdmin, session.RoleSuperadmin:
		return AdminDashboardPath
	default:
		return DashboardPath
	}
}

// RequiredRole maps a dashboard area to the role it demands. Areas not
// listed require authentication only.
func RequiredRole(path string) session.Role {
	switch path {
	case AdminDashboardPath:
		return session.RoleAdmin
	case AuthorDashboardPath:
		return session.RoleAuthor
	default:
		return ""
	}
}
