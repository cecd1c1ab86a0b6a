package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cycks/loftier-cli/internal/gateway"
)

// LoginPath is where a force-closed session lands.
const LoginPath = "/login"

// ReasonExpired marks a logout forced by the server rejecting the token.
const ReasonExpired = "expired"

// HeaderSetter is the gateway surface the store writes through: the
// default Authorization header applied when no fresher token is found.
type HeaderSetter interface {
	SetAuthorization(token string)
	ClearAuthorization()
}

// AuthAPI is the backend surface the store depends on.
type AuthAPI interface {
	// CurrentUser fetches the profile for the current bearer token.
	CurrentUser(ctx context.Context) (*User, error)
	// GoogleLogout notifies the provider-logout endpoint. The token is
	// passed explicitly because the default header may already be gone.
	GoogleLogout(ctx context.Context, token string) error
}

// Navigator performs a full client-side navigation. Logout uses it to
// discard all in-memory state rather than attempting a soft reset.
type Navigator interface {
	Replace(path string)
}

// Store is the single source of truth for who is logged in. One Store
// exists per client instance and lives for the process lifetime. Every
// mutation writes through to durable storage before or alongside the
// in-memory update.
type Store struct {
	storage *Storage
	gw      HeaderSetter
	auth    AuthAPI
	nav     Navigator
	notices *Notices

	mu        sync.Mutex
	token     string
	user      *User
	state     AuthState
	restoring bool

	restoreOnce sync.Once
}

// NewStore creates the session store. The store starts in the restoring
// state; Restore must be called once at startup to resolve it.
func NewStore(storage *Storage, gw HeaderSetter, auth AuthAPI, nav Navigator) *Store {
	return &Store{
		storage:   storage,
		gw:        gw,
		auth:      auth,
		nav:       nav,
		notices:   NewNotices(),
		restoring: true,
	}
}

// Notices exposes the one-shot session message surface.
func (s *Store) Notices() *Notices {
	return s.notices
}

// Snapshot returns a point-in-time view for routing decisions.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Restoring:     s.restoring,
		Authenticated: s.state != AuthAnonymous,
		State:         s.state,
		User:          s.user,
	}
}

// Authenticated reports whether a token is currently held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != AuthAnonymous
}

// Token returns the in-memory bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns the in-memory profile, nil when none is applied.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SkipNextLogout arms the one-shot suppression flag: the next failure
// seen by the global session policy propagates without forcing logout.
func (s *Store) SkipNextLogout() {
	s.notices.Set(noticeSkipLogout, "1")
}

// ConsumeSkipLogout consumes the suppression flag, reporting whether it
// was armed. Part of the gateway.SessionPolicy surface.
func (s *Store) ConsumeSkipLogout() bool {
	_, ok := s.notices.Take(noticeSkipLogout)
	return ok
}

// Invalidate is the gateway.SessionPolicy entry point for a
// session-invalid classification.
func (s *Store) Invalidate(reason string) {
	s.Logout(reason)
}

// Restore resolves the persisted session exactly once at startup. With
// no persisted token it completes immediately; otherwise the session is
// optimistically marked authenticated, the token is attached to the
// gateway, and the profile is confirmed with the server. The restoring
// flag is cleared on every path.
func (s *Store) Restore(ctx context.Context) error {
	var err error
	s.restoreOnce.Do(func() {
		err = s.restore(ctx)
	})
	return err
}

func (s *Store) restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.restoring = false
		s.mu.Unlock()
	}()

	token := s.storage.Token()
	if token == "" {
		log.Debug().Msg("no persisted session")
		return nil
	}

	// Tentatively authenticated: the token exists but the server has not
	// confirmed it yet. The stale persisted profile is applied for
	// display until the fetch resolves.
	s.mu.Lock()
	s.token = token
	s.state = AuthTentative
	if u, err := s.storage.User(); err == nil {
		s.user = u
	}
	s.mu.Unlock()
	s.gw.SetAuthorization(token)

	if _, err := s.FetchUser(ctx, token); err != nil {
		log.Debug().Err(err).Msg("session restore could not confirm profile")
		return err
	}

	log.Debug().Msg("session restored")
	return nil
}

// FetchUser requests the current profile. A non-empty token is applied
// (persisted and attached) before the request. On a session-invalid
// failure the session is closed; any other failure is returned without
// touching session state, so a transient or permission error on one
// endpoint cannot destroy a valid session.
func (s *Store) FetchUser(ctx context.Context, token string) (*User, error) {
	if token != "" {
		if err := s.ApplyToken(token); err != nil {
			return nil, err
		}
	}

	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		var se *gateway.StatusError
		if errors.As(err, &se) && se.Suppressed {
			// The gateway policy already consumed the skip flag for
			// this failure; never force logout twice.
			return nil, err
		}
		if s.ConsumeSkipLogout() {
			return nil, err
		}
		if errors.Is(err, gateway.ErrAuthentication) && s.Authenticated() {
			s.Logout(ReasonExpired)
		}
		return nil, err
	}

	if err := s.ApplyUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login applies the token and profile obtained from a prior
// authentication request. No network call is made.
func (s *Store) Login(token string, u *User) error {
	if err := s.ApplyToken(token); err != nil {
		return err
	}
	return s.ApplyUser(u)
}

// ApplyToken persists the token, updates the in-memory token, and sets
// the gateway's default Authorization header. No-op for an empty token.
func (s *Store) ApplyToken(token string) error {
	if token == "" {
		return nil
	}

	if err := s.storage.WriteToken(token); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	if s.state == AuthAnonymous {
		s.state = AuthTentative
	}
	s.mu.Unlock()

	s.gw.SetAuthorization(token)
	return nil
}

// ApplyUser persists the profile and confirms the session.
func (s *Store) ApplyUser(u *User) error {
	if err := s.storage.WriteUser(u); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = u
	s.state = AuthConfirmed
	s.mu.Unlock()
	return nil
}

// Logout clears the session from memory and durable storage, clears the
// gateway's default Authorization header, and concludes with a full
// navigation to the login entry point. With reason ReasonExpired a
// one-shot notice is left for the next rendered page. Safe to call on
// an already-closed session.
func (s *Store) Logout(reason string) {
	log.Info().Str("reason", reason).Msg("logging out")

	if err := s.storage.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.gw.ClearAuthorization()

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = AuthAnonymous
	s.mu.Unlock()

	if reason == ReasonExpired {
		s.notices.Set(NoticeAuthMessage, ExpiredMessage)
	}

	s.nav.Replace(LoginPath)
}

// LogoutGoogle notifies the provider-logout endpoint best-effort, then
// always closes the local session. The token is read fresh from durable
// storage and attached explicitly since the default header may already
// be cleared by the time this runs.
func (s *Store) LogoutGoogle(ctx context.Context) {
	if token := s.storage.Token(); token != "" {
		if err := s.auth.GoogleLogout(ctx, token); err != nil {
			log.Warn().Err(err).Msg("google logout failed")
		}
	}
	s.Logout("")
}
