// Package session holds the client's authentication state: the bearer
// token, the current user profile, and the derived authentication flags.
// The state lives in memory and is mirrored to a JSON file in the loftier
// home directory so a restart always reflects the last committed session.
package session

// Role is the access tier assigned to a platform account.
type Role string

const (
	RoleCommentator Role = "commentator"
	RoleAuthor      Role = "author"
	RoleAdmin       Role = "admin"
	RoleSuperadmin  Role = "superadmin"
)

// User is the profile record returned by GET /auth/user/me.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	AuthProvider   string `json:"auth_provider,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	IsApproved     bool   `json:"is_approved,omitempty"`
}

// AuthState tracks how much of the session has been validated.
//
// Tentative means a persisted token was found at startup but the server
// has not yet confirmed it; Confirmed means the profile fetch succeeded.
// Both count as authenticated for routing purposes.
type AuthState int

const (
	AuthAnonymous AuthState = iota
	AuthTentative
	AuthConfirmed
)

func (s AuthState) String() string {
	switch s {
	case AuthTentative:
		return "tentative"
	case AuthConfirmed:
		return "confirmed"
	default:
		return "anonymous"
	}
}

// Snapshot is a point-in-time view of the session for routing decisions.
type Snapshot struct {
	Restoring     bool
	Authenticated bool
	State         AuthState
	User          *User
}

// Role returns the current user's role, or the empty Role when no
// profile has been applied yet.
func (s Snapshot) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
