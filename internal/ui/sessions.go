package ui

import (
	"context"
	"net/http"
	"sync"
	"time"

	"mining-cost-calculator/internal/estimator"

	"github.com/google/uuid"
)

const sessionCookie = "minecalc_session"

type session struct {
	ctrl     *estimator.Controller
	lastSeen time.Time
}

// SessionStore keeps one form controller per browser session in memory.
// Sessions idle for longer than the TTL are dropped by Sweep.
type SessionStore struct {
	calc estimator.Calculator
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionStore(calc estimator.Calculator, ttl time.Duration) *SessionStore {
	return &SessionStore{
		calc:     calc,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Controller returns the controller for the request's session, creating a
// session and setting its cookie when the request has none or it expired.
func (s *SessionStore) Controller(w http.ResponseWriter, r *http.Request) *estimator.Controller {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok && now.Sub(sess.lastSeen) <= s.ttl {
			sess.lastSeen = now
			return sess.ctrl
		}
	}

	id := uuid.New().String()
	sess := &session{ctrl: estimator.NewController(s.calc), lastSeen: now}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.ctrl
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
