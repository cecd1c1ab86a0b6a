package session

import "sync"

// Notice keys shared between the store, the gateway policy, and the guard.
const (
	NoticeAuthMessage = "auth_message"
	noticeSkipLogout  = "skip_logout_once"
)

// ExpiredMessage is written when a session is force-closed because the
// server rejected its token.
const ExpiredMessage = "Your session expired. Please log in again."

// Notices holds one-shot, session-scoped values. A value is read at most
// once: Take returns it and deletes it in the same call. Notices live for
// the process lifetime only and are never persisted.
type Notices struct {
	mu     sync.Mutex
	values map[string]string
}

func NewNotices() *Notices {
	return &Notices{values: make(map[string]string)}
}

// Set stores a value under key, replacing any unread value.
func (n *Notices) Set(key, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[key] = value
}

// Take returns the value for key and deletes it.
func (n *Notices) Take(key string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.values[key]
	if ok {
		delete(n.values, key)
	}
	return v, ok
}
