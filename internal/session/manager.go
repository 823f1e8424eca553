package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type ManagerOptions struct {
	CookieName string
	Secure     bool
	// TTL caps a session's life; a token that expires sooner wins.
	TTL time.Duration
}

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	cookie string
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, opts ManagerOptions) *Manager {
	name := opts.CookieName
	if name == "" {
		name = "vodadmin_session"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{store: store, cookie: name, secure: opts.Secure, ttl: ttl, now: time.Now}
}

func (m *Manager) Store() Store { return m.store }

// Start assigns s a fresh id, persists it and sets the cookie. A zero or
// later-than-TTL ExpiresAt is clamped to now+TTL.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, s *Session) error {
	now := m.now()
	s.ID = NewID()
	s.CreatedAt = now
	if limit := now.Add(m.ttl); s.ExpiresAt.IsZero() || s.ExpiresAt.After(limit) {
		s.ExpiresAt = limit
	}
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the session named by the request cookie, or ErrNotFound.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cookie)
	if err != nil || c.Value == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(r.Context(), c.Value)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy deletes the request's session, if any, and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	var err error
	if c, cerr := r.Cookie(m.cookie); cerr == nil && c.Value != "" {
		if derr := m.store.Delete(r.Context(), c.Value); derr != nil && !errors.Is(derr, ErrNotFound) {
			err = derr
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}
