package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gocql/gocql"
)

func TestMemoryRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	s := &Session{ID: "abc", AccessToken: "tok", Role: "admin", ExpiresAt: now.Add(time.Hour)}
	if err := m.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.items["abc"]; ok {
		t.Fatal("raw id must not be used as a storage key")
	}

	got, err := m.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "abc" || got.Token() != "tok" {
		t.Fatalf("got %+v", got)
	}

	now = now.Add(2 * time.Hour)
	if _, err := m.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session: err = %v", err)
	}
	if len(m.items) != 0 {
		t.Fatal("expired session should be removed on read")
	}
}

func TestMemoryPurge(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	m.now = func() time.Time { return now }
	_ = m.Save(ctx, &Session{ID: "old", ExpiresAt: now.Add(-time.Minute)})
	_ = m.Save(ctx, &Session{ID: "new", ExpiresAt: now.Add(time.Minute)})

	n, err := m.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Purge = %d, %v", n, err)
	}
	if _, err := m.Get(ctx, "new"); err != nil {
		t.Fatalf("live session lost: %v", err)
	}
}

func TestHashIDIsStable(t *testing.T) {
	a, b := hashID("same"), hashID("same")
	if a != b || len(a) != 64 {
		t.Fatalf("hash = %q / %q", a, b)
	}
	if hashID("other") == a {
		t.Fatal("different ids collide")
	}
}

func TestNilSessionToken(t *testing.T) {
	var s *Session
	if s.Token() != "" {
		t.Fatal("nil session has no token")
	}
}

func TestManagerLifecycle(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemory()
	store.now = func() time.Time { return now }
	mgr := NewManager(store, ManagerOptions{CookieName: "sid", Secure: true, TTL: time.Hour})
	mgr.now = store.now

	rec := httptest.NewRecorder()
	s := &Session{AccessToken: "tok", ExpiresAt: now.Add(48 * time.Hour)}
	if err := mgr.Start(context.Background(), rec, s); err != nil {
		t.Fatal(err)
	}
	if !s.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiry not clamped to ttl: %v", s.ExpiresAt)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %v", cookies)
	}
	c := cookies[0]
	if c.Name != "sid" || c.Value != s.ID || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("cookie = %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	loaded, err := mgr.Load(req)
	if err != nil || loaded.AccessToken != "tok" {
		t.Fatalf("Load = %+v, %v", loaded, err)
	}

	rec = httptest.NewRecorder()
	if err := mgr.Destroy(rec, req); err != nil {
		t.Fatal(err)
	}
	if cleared := rec.Result().Cookies(); len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %v", cleared)
	}
	if _, err := mgr.Load(req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session survived Destroy: %v", err)
	}
}

func TestManagerKeepsEarlierTokenExpiry(t *testing.T) {
	now := time.Now()
	mgr := NewManager(NewMemory(), ManagerOptions{TTL: 12 * time.Hour})
	mgr.now = func() time.Time { return now }
	s := &Session{ExpiresAt: now.Add(10 * time.Minute)}
	if err := mgr.Start(context.Background(), httptest.NewRecorder(), s); err != nil {
		t.Fatal(err)
	}
	if !s.ExpiresAt.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("token expiry overridden: %v", s.ExpiresAt)
	}
}

func TestLoadWithoutCookie(t *testing.T) {
	mgr := NewManager(NewMemory(), ManagerOptions{})
	if _, err := mgr.Load(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestTTLSeconds(t *testing.T) {
	now := time.Now()
	cases := []struct {
		exp  time.Time
		want int
	}{
		{now.Add(90 * time.Second), 90},
		{now.Add(1500 * time.Millisecond), 2},
		{now, 1},
		{now.Add(-time.Hour), 1},
	}
	for _, tc := range cases {
		if got := ttlSeconds(tc.exp, now); got != tc.want {
			t.Errorf("ttlSeconds(%v) = %d, want %d", tc.exp.Sub(now), got, tc.want)
		}
	}
}

func TestParseConsistency(t *testing.T) {
	cases := map[string]gocql.Consistency{
		"one":          gocql.One,
		"LOCAL_ONE":    gocql.LocalOne,
		"local_quorum": gocql.LocalQuorum,
		"ALL":          gocql.All,
		"":             gocql.Quorum,
		"bogus":        gocql.Quorum,
	}
	for in, want := range cases {
		if got := parseConsistency(in); got != want {
			t.Errorf("parseConsistency(%q) = %v, want %v", in, got, want)
		}
	}
}
