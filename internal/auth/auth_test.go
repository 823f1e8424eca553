package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"vodadmin/internal/api"
	"vodadmin/internal/session"
)

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		name string
		user map[string]any
		want bool
	}{
		{"lower", map[string]any{"role": "admin"}, true},
		{"upper", map[string]any{"Role": "ADMIN"}, true},
		{"role_name", map[string]any{"role_name": "Admin"}, true},
		{"Role_name", map[string]any{"Role_name": "admin"}, true},
		{"account_role", map[string]any{"account_role": float64(1)}, true},
		{"Account_role string id", map[string]any{"Account_role": "1"}, true},
		{"user", map[string]any{"role": "user"}, false},
		{"numeric 2", map[string]any{"role": float64(2)}, false},
		{"first key wins", map[string]any{"role": "user", "Role": "admin"}, false},
		{"null skipped", map[string]any{"role": nil, "Role": "admin"}, true},
		{"no role", map[string]any{"email": "a@b.vn"}, false},
		{"nil user", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAdmin(tc.user); got != tc.want {
				t.Fatalf("IsAdmin(%v) = %v, want %v", tc.user, got, tc.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		user map[string]any
		want string
	}{
		{map[string]any{"full_name": "Nguyễn Văn A", "name": "a"}, "Nguyễn Văn A"},
		{map[string]any{"full_name": "", "name": "an"}, "an"},
		{map[string]any{"username": "admin01"}, "admin01"},
		{map[string]any{"email": "a@vod.vn"}, "a@vod.vn"},
		{map[string]any{}, "Admin"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.user); got != tc.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tc.user, got, tc.want)
		}
	}
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	info, ok := InspectToken(signed(t, jwt.MapClaims{"exp": exp.Unix(), "role": "admin"}))
	if !ok {
		t.Fatal("expected a JWT")
	}
	if !info.ExpiresAt.Equal(exp) || info.Role != "admin" {
		t.Fatalf("info = %+v", info)
	}

	if _, ok := InspectToken("opaque-token"); ok {
		t.Fatal("opaque token parsed as JWT")
	}

	info, ok = InspectToken(signed(t, jwt.MapClaims{"uid": "7"}))
	if !ok || !info.ExpiresAt.IsZero() {
		t.Fatalf("token without exp: %+v %v", info, ok)
	}
}

type fakeBackend struct {
	calls int
	res   api.LoginResult
	err   error
}

func (f *fakeBackend) Login(context.Context, string, string) (api.LoginResult, error) {
	f.calls++
	return f.res, f.err
}

func newService(b Backend) (*Service, *session.Manager) {
	mgr := session.NewManager(session.NewMemory(), session.ManagerOptions{TTL: time.Hour})
	return NewService(b, mgr, zerolog.Nop()), mgr
}

func loginMessage(t *testing.T, err error) string {
	t.Helper()
	var le *LoginError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoginError", err)
	}
	return le.Message
}

func TestLoginRequiresBothFields(t *testing.T) {
	b := &fakeBackend{}
	svc, _ := newService(b)
	_, err := svc.Login(context.Background(), httptest.NewRecorder(), "  ", "pw")
	if msg := loginMessage(t, err); msg != MsgMissingCredentials {
		t.Fatalf("msg = %q", msg)
	}
	if b.calls != 0 {
		t.Fatal("backend must not be called without credentials")
	}
}

func TestLoginAdminStartsSession(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	b := &fakeBackend{res: api.LoginResult{
		Token: signed(t, jwt.MapClaims{"exp": exp.Unix()}),
		User:  map[string]any{"Role": "Admin", "full_name": "Quản trị", "email": "root@vod.vn"},
	}}
	svc, mgr := newService(b)
	rec := httptest.NewRecorder()
	sess, err := svc.Login(context.Background(), rec, "root@vod.vn", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Name != "Quản trị" || !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("session = %+v", sess)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	if got, err := mgr.Load(req); err != nil || got.AccessToken != b.res.Token {
		t.Fatalf("Load = %+v, %v", got, err)
	}
}

func TestLoginRefusals(t *testing.T) {
	expired := signed(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	cases := []struct {
		name string
		b    *fakeBackend
		want string
	}{
		{"backend reason", &fakeBackend{err: &api.LoginError{Reason: "Tài khoản bị khóa"}}, "Tài khoản bị khóa"},
		{"no reason", &fakeBackend{err: &api.LoginError{}}, MsgBadCredentials},
		{"refused without reason", &fakeBackend{err: &api.LoginError{Answered: true}}, MsgLoginFailed},
		{"transport", &fakeBackend{err: api.ErrUnavailable}, MsgLoginFailed},
		{"not admin", &fakeBackend{res: api.LoginResult{Token: "t", User: map[string]any{"role": "user"}}}, MsgNotAdmin},
		{"expired token", &fakeBackend{res: api.LoginResult{Token: expired, User: map[string]any{"role": "admin"}}}, MsgLoginFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(tc.b)
			rec := httptest.NewRecorder()
			_, err := svc.Login(context.Background(), rec, "a@vod.vn", "pw")
			if msg := loginMessage(t, err); msg != tc.want {
				t.Fatalf("msg = %q, want %q", msg, tc.want)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatal("refused login must not set a cookie")
			}
		})
	}
}

func TestLoginRoleFromTokenWhenUserHasNone(t *testing.T) {
	b := &fakeBackend{res: api.LoginResult{
		Token: signed(t, jwt.MapClaims{"role": float64(1), "exp": time.Now().Add(time.Hour).Unix()}),
		User:  map[string]any{"email": "a@vod.vn"},
	}}
	svc, _ := newService(b)
	if _, err := svc.Login(context.Background(), httptest.NewRecorder(), "a@vod.vn", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestRequireSession(t *testing.T) {
	mgr := session.NewManager(session.NewMemory(), session.ManagerOptions{CookieName: "sid"})
	var seen *session.Session
	h := RequireSession(mgr, "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/films", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("anonymous: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	start := httptest.NewRecorder()
	if err := mgr.Start(context.Background(), start, &session.Session{AccessToken: "tok", Role: "admin"}); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	req.AddCookie(start.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen == nil || seen.Token() != "tok" {
		t.Fatalf("signed in: %d %+v", rec.Code, seen)
	}
}

func TestRequireToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	cases := []struct {
		expected, header, bearer string
		want                     int
	}{
		{"", "x", "", http.StatusUnauthorized},
		{"s3cret", "", "", http.StatusUnauthorized},
		{"s3cret", "wrong", "", http.StatusUnauthorized},
		{"s3cret", "s3cret", "", http.StatusOK},
		{"s3cret", "", "s3cret", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if tc.header != "" {
			req.Header.Set("X-API-Token", tc.header)
		}
		if tc.bearer != "" {
			req.Header.Set("Authorization", "Bearer "+tc.bearer)
		}
		rec := httptest.NewRecorder()
		RequireToken(tc.expected)(ok).ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("expected=%q header=%q bearer=%q: code %d, want %d", tc.expected, tc.header, tc.bearer, rec.Code, tc.want)
		}
	}
}
