package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"
)

type ScyllaOptions struct {
	Hosts       []string
	Port        int
	Keyspace    string
	Consistency string
	Replication int
	// Attempts bounds the connect loop; Scylla is often still starting when
	// the panel comes up.
	Attempts   int
	RetryDelay time.Duration
}

// Scylla keeps sessions in a table whose rows expire through CQL TTLs, so
// Purge has nothing to do.
type Scylla struct {
	session  *gocql.Session
	keyspace string
}

func NewScylla(ctx context.Context, opts ScyllaOptions, log zerolog.Logger) (*Scylla, error) {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 20
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		s, err := connectScylla(opts)
		if err == nil {
			if err = ensureSchema(s, opts.Keyspace); err == nil {
				return &Scylla{session: s, keyspace: opts.Keyspace}, nil
			}
			s.Close()
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", i+1).Int("of", attempts).Msg("scylla session store not ready")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("scylla connect: %w", lastErr)
}

func connectScylla(opts ScyllaOptions) (*gocql.Session, error) {
	cluster := gocql.NewCluster(opts.Hosts...)
	if opts.Port > 0 {
		cluster.Port = opts.Port
	}
	cluster.Timeout = 5 * time.Second
	cluster.Consistency = parseConsistency(opts.Consistency)

	tmp, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	err = ensureKeyspace(tmp, opts.Keyspace, opts.Replication)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("ensure keyspace %s: %w", opts.Keyspace, err)
	}

	cluster.Keyspace = opts.Keyspace
	return cluster.CreateSession()
}

func ensureKeyspace(s *gocql.Session, keyspace string, replicationFactor int) error {
	if replicationFactor <= 0 {
		replicationFactor = 3
	}
	stmt := fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}", keyspace, replicationFactor)
	return s.Query(stmt).Exec()
}

func ensureSchema(s *gocql.Session, keyspace string) error {
	return s.Query(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.admin_sessions (
		id_hash text PRIMARY KEY,
		token text,
		name text,
		email text,
		role text,
		created_at timestamp,
		expires_at timestamp
	)`, keyspace)).Exec()
}

func parseConsistency(c string) gocql.Consistency {
	switch strings.ToUpper(strings.TrimSpace(c)) {
	case "ONE":
		return gocql.One
	case "LOCAL_ONE":
		return gocql.LocalOne
	case "LOCAL_QUORUM":
		return gocql.LocalQuorum
	case "ALL":
		return gocql.All
	default:
		return gocql.Quorum
	}
}

// ttlSeconds is the CQL TTL for a row expiring at exp. Zero would mean
// "never", so an already-expired row gets the minimum of one second.
func ttlSeconds(exp, now time.Time) int {
	secs := int(exp.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func (c *Scylla) Get(ctx context.Context, id string) (*Session, error) {
	s := Session{ID: id}
	err := c.session.Query(fmt.Sprintf(`SELECT token,name,email,role,created_at,expires_at FROM %s.admin_sessions WHERE id_hash=?`, c.keyspace), hashID(id)).
		WithContext(ctx).
		Scan(&s.AccessToken, &s.Name, &s.Email, &s.Role, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (c *Scylla) Save(ctx context.Context, s *Session) error {
	return c.session.Query(fmt.Sprintf(`INSERT INTO %s.admin_sessions (id_hash,token,name,email,role,created_at,expires_at)
		VALUES (?,?,?,?,?,?,?) USING TTL ?`, c.keyspace),
		hashID(s.ID), s.AccessToken, s.Name, s.Email, s.Role, s.CreatedAt, s.ExpiresAt, ttlSeconds(s.ExpiresAt, time.Now())).
		WithContext(ctx).
		Exec()
}

func (c *Scylla) Delete(ctx context.Context, id string) error {
	return c.session.Query(fmt.Sprintf(`DELETE FROM %s.admin_sessions WHERE id_hash=?`, c.keyspace), hashID(id)).
		WithContext(ctx).
		Exec()
}

func (c *Scylla) Purge(context.Context) (int, error) { return 0, nil }

func (c *Scylla) Close() error {
	c.session.Close()
	return nil
}
