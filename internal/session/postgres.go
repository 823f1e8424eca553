package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS admin_sessions (
	id_hash    text PRIMARY KEY,
	token      text NOT NULL,
	name       text NOT NULL DEFAULT '',
	email      text NOT NULL DEFAULT '',
	role       text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL,
	expires_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS admin_sessions_expires_idx ON admin_sessions (expires_at);`

// Postgres stores sessions in a single table so several panel instances
// can share logins.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool with sane defaults.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MinConns = 0
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 60 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*Session, error) {
	key := hashID(id)
	s := Session{ID: id}
	err := p.pool.QueryRow(ctx,
		`SELECT token,name,email,role,created_at,expires_at FROM admin_sessions WHERE id_hash=$1`, key).
		Scan(&s.AccessToken, &s.Name, &s.Email, &s.Role, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now()) {
		_, _ = p.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE id_hash=$1`, key)
		return nil, ErrNotFound
	}
	return &s, nil
}

func (p *Postgres) Save(ctx context.Context, s *Session) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO admin_sessions (id_hash,token,name,email,role,created_at,expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id_hash) DO UPDATE SET
			token=EXCLUDED.token, name=EXCLUDED.name, email=EXCLUDED.email,
			role=EXCLUDED.role, expires_at=EXCLUDED.expires_at`,
		hashID(s.ID), s.AccessToken, s.Name, s.Email, s.Role, s.CreatedAt, s.ExpiresAt)
	return err
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE id_hash=$1`, hashID(id))
	return err
}

func (p *Postgres) Purge(ctx context.Context) (int, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
