// Package session keeps the admin's login state on the server side. The
// browser only holds an opaque id; stores key their rows by a hash of it.
package session

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

var ErrNotFound = errors.New("session not found")

// Session is what the panel knows about the signed-in admin. It satisfies
// api.TokenSource so a per-request client can be built from it.
type Session struct {
	ID          string
	AccessToken string
	Name        string
	Email       string
	Role        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists sessions. Get returns ErrNotFound for unknown and expired
// ids alike.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// Purge removes expired sessions and reports how many went.
	Purge(ctx context.Context) (int, error)
	Close() error
}

func NewID() string {
	return uuid.NewString()
}

// hashID is the storage key for a cookie value.
func hashID(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
