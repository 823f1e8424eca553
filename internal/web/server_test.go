package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"vodadmin/internal/api"
	"vodadmin/internal/auth"
	"vodadmin/internal/catalog"
	"vodadmin/internal/session"
)

const adminToken = "admin-token"

type harness struct {
	t       *testing.T
	handler http.Handler
	mgr     *session.Manager
	cookie  *http.Cookie
}

func newHarness(t *testing.T, backend http.Handler) *harness {
	t.Helper()
	be := httptest.NewServer(backend)
	t.Cleanup(be.Close)

	client := api.New(api.Options{
		BaseURL:        be.URL,
		Timeout:        2 * time.Second,
		BreakerTimeout: time.Minute,
		Logger:         zerolog.Nop(),
	})
	mgr := session.NewManager(session.NewMemory(), session.ManagerOptions{})
	srv, err := New(Deps{
		API:      client,
		Sessions: mgr,
		Auth:     auth.NewService(client, mgr, zerolog.Nop()),
		Lookups:  catalog.NewLookups(time.Minute),
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{t: t, handler: srv.Routes(), mgr: mgr}
}

func (h *harness) signIn() {
	h.t.Helper()
	rec := httptest.NewRecorder()
	s := &session.Session{AccessToken: adminToken, Name: "Quản trị viên", Email: "admin@example.com", Role: "admin"}
	if err := h.mgr.Start(context.Background(), rec, s); err != nil {
		h.t.Fatalf("Start: %v", err)
	}
	h.cookie = rec.Result().Cookies()[0]
}

func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) page(target string) *goquery.Document {
	h.t.Helper()
	rec := h.do(http.MethodGet, target, nil)
	if rec.Code != http.StatusOK {
		h.t.Fatalf("GET %s: status %d, body %s", target, rec.Code, rec.Body.String())
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		h.t.Fatalf("parse %s: %v", target, err)
	}
	return doc
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// recorder keeps what the fake backend received.
type recorder struct {
	mu     sync.Mutex
	calls  []string
	bodies []map[string]any
	auth   []string
}

func (rc *recorder) record(r *http.Request) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.calls = append(rc.calls, r.Method+" "+r.URL.RequestURI())
	rc.auth = append(rc.auth, r.Header.Get("Authorization"))
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	rc.bodies = append(rc.bodies, body)
}

func (rc *recorder) count(prefix string) int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	n := 0
	for _, c := range rc.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (rc *recorder) last() (string, map[string]any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.calls) == 0 {
		return "", nil
	}
	return rc.calls[len(rc.calls)-1], rc.bodies[len(rc.bodies)-1]
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.Value != "" {
			raw, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatal(err)
			}
			_, msg, _ := strings.Cut(raw, "|")
			return msg
		}
	}
	return ""
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	h := newHarness(t, chi.NewRouter())
	for _, target := range []string{"/", "/films", "/genres", "/stats"} {
		rec := h.do(http.MethodGet, target, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("GET %s = %d %q", target, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestListRendersOneEscapedRowPerRecord(t *testing.T) {
	rc := &recorder{}
	be := chi.NewRouter()
	be.Get("/api/genres/", func(w http.ResponseWriter, r *http.Request) {
		rc.record(r)
		reply(w, 200, `{"data":[
			{"Genre_id":1,"Genre_name":"Hành động"},
			{"Genre_id":2,"Genre_name":"<script>alert(1)</script>"},
			{"Genre_id":3,"Genre_name":"Tom & Jerry"}]}`)
	})
	h := newHarness(t, be)
	h.signIn()

	rec := h.do(http.MethodGet, "/genres", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatal("genre name rendered unescaped")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rows := doc.Find("#genres-table tbody tr[data-id]")
	if rows.Length() != 3 {
		t.Fatalf("rows = %d, want 3", rows.Length())
	}
	if got := rows.Eq(1).Find("td").Eq(1).Text(); got != "<script>alert(1)</script>" {
		t.Errorf("cell text = %q", got)
	}
	if got := rows.Eq(2).Find("td").Eq(1).Text(); got != "Tom & Jerry" {
		t.Errorf("cell text = %q", got)
	}
	if rc.auth[0] != "Bearer "+adminToken {
		t.Errorf("Authorization = %q", rc.auth[0])
	}
	if doc.Find("#admin-name").Text() != "Quản trị viên" {
		t.Error("nav should show the signed-in admin")
	}
}

func TestEmptyListRendersPlaceholder(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/postertypes/", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[]`)
	})
	h := newHarness(t, be)
	h.signIn()

	doc := h.page("/postertypes")
	if n := doc.Find("#postertypes-table tbody tr[data-id]").Length(); n != 0 {
		t.Fatalf("rows = %d", n)
	}
	if doc.Find("#postertypes-table tr.empty").Length() != 1 {
		t.Fatal("missing empty placeholder row")
	}
}

func TestSearchUsesSearchEndpoint(t *testing.T) {
	rc := &recorder{}
	be := chi.NewRouter()
	be.Get("/api/actors/search", func(w http.ResponseWriter, r *http.Request) {
		rc.record(r)
		reply(w, 200, `[{"Actor_id":9,"Actor_name":"Trấn Thành","Actor_gender":"Nam"}]`)
	})
	h := newHarness(t, be)
	h.signIn()

	doc := h.page("/actors?q=" + url.QueryEscape("Trấn"))
	if got := doc.Find("#actors-table tbody tr[data-id]").Length(); got != 1 {
		t.Fatalf("rows = %d", got)
	}
	call, _ := rc.last()
	if call != "GET /api/actors/search?keyword=Tr%E1%BA%A5n" {
		t.Errorf("backend call = %q", call)
	}
	if v, _ := doc.Find(`input[name="q"]`).Attr("value"); v != "Trấn" {
		t.Errorf("search box = %q", v)
	}
}

func TestEditPrefillsForm(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/accounts/", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"Account_id":4,"Email":"a@b.vn","role":"admin"}]`)
	})
	h := newHarness(t, be)
	h.signIn()

	doc := h.page("/accounts?edit=4")
	form := doc.Find("#accounts-form")
	if action, _ := form.Attr("action"); action != "/accounts/4" {
		t.Errorf("action = %q", action)
	}
	if v, _ := form.Find(`input[name="email"]`).Attr("value"); v != "a@b.vn" {
		t.Errorf("email = %q", v)
	}
	if v, _ := form.Find(`input[name="password"]`).Attr("value"); v != "" {
		t.Errorf("password must not be prefilled, got %q", v)
	}
	if v, _ := form.Find(`select[name="role"] option[selected]`).Attr("value"); v != "admin" {
		t.Errorf("role = %q", v)
	}
	if href, _ := doc.Find(`#accounts-table a[href="/accounts/4/payments"]`).Attr("href"); href == "" {
		t.Error("missing payments link")
	}
}

func TestCreateSendsPayloadAndValidates(t *testing.T) {
	rc := &recorder{}
	be := chi.NewRouter()
	be.Post("/api/genres/", func(w http.ResponseWriter, r *http.Request) {
		rc.record(r)
		reply(w, 201, `{"success":true}`)
	})
	h := newHarness(t, be)
	h.signIn()

	rec := h.do(http.MethodPost, "/genres", url.Values{"genre_name": {"  Kinh dị "}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/genres" {
		t.Fatalf("create = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	call, body := rc.last()
	if call != "POST /api/genres/" || body["genre_name"] != "Kinh dị" {
		t.Fatalf("backend got %q %v", call, body)
	}
	if msg := flashOf(t, rec); msg != msgSaved {
		t.Errorf("flash = %q", msg)
	}

	rec = h.do(http.MethodPost, "/genres", url.Values{"genre_name": {"   "}})
	if rc.count("POST") != 1 {
		t.Fatal("invalid form must not reach the backend")
	}
	if msg := flashOf(t, rec); msg != "Vui lòng nhập tên thể loại" {
		t.Errorf("flash = %q", msg)
	}
}

func TestUpdateFailureKeepsEditing(t *testing.T) {
	be := chi.NewRouter()
	be.Put("/api/countries/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 409, `{"error":"Tên đã tồn tại"}`)
	})
	h := newHarness(t, be)
	h.signIn()

	rec := h.do(http.MethodPost, "/countries/3", url.Values{"country_name": {"Nhật Bản"}})
	if loc := rec.Header().Get("Location"); loc != "/countries?edit=3" {
		t.Errorf("Location = %q", loc)
	}
	if msg := flashOf(t, rec); msg != "Lưu không thành công: Tên đã tồn tại" {
		t.Errorf("flash = %q", msg)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	rc := &recorder{}
	be := chi.NewRouter()
	be.Get("/api/genres/", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"Genre_id":5,"Genre_name":"Hài"}]`)
	})
	be.Delete("/api/genres/{id}", func(w http.ResponseWriter, r *http.Request) {
		rc.record(r)
		reply(w, 200, `{"success":true}`)
	})
	h := newHarness(t, be)
	h.signIn()

	doc := h.page("/genres/5/delete")
	if !strings.Contains(doc.Find("#confirm-message").Text(), "Hài") {
		t.Errorf("confirm message = %q", doc.Find("#confirm-message").Text())
	}
	form := doc.Find(`form[action="/genres/5/delete"]`)
	if v, _ := form.Find(`input[name="confirm"]`).Attr("value"); v != "yes" {
		t.Fatal("confirmation form must carry confirm=yes")
	}
	if rc.count("DELETE") != 0 {
		t.Fatal("showing the confirmation must not delete")
	}

	rec := h.do(http.MethodPost, "/genres/5/delete", url.Values{})
	if rec.Code != http.StatusSeeOther || rc.count("DELETE") != 0 {
		t.Fatalf("unconfirmed post: status %d, deletes %d", rec.Code, rc.count("DELETE"))
	}

	rec = h.do(http.MethodPost, "/genres/5/delete", url.Values{"confirm": {"yes"}})
	if rc.count("DELETE /api/genres/5") != 1 {
		t.Fatalf("confirmed post: calls %v", rc.calls)
	}
	if msg := flashOf(t, rec); msg != msgDeleted {
		t.Errorf("flash = %q", msg)
	}
}

func TestUnauthorizedBackendDropsSession(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/accounts/", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 401, `{"error":"token expired"}`)
	})
	h := newHarness(t, be)
	h.signIn()

	rec := h.do(http.MethodGet, "/accounts", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == h.cookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie should be expired")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(h.cookie)
	if _, err := h.mgr.Load(req); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("session still present: %v", err)
	}
	if rec := h.do(http.MethodGet, "/accounts", nil); rec.Header().Get("Location") != "/login" {
		t.Fatal("old cookie must no longer pass the guard")
	}
}

func TestLoadFailureShowsAlert(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/profiles/", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 500, `{"error":"boom"}`)
	})
	h := newHarness(t, be)
	h.signIn()

	doc := h.page("/profiles")
	if got := doc.Find(".alert-danger").Text(); got != "Không tải được danh sách hồ sơ" {
		t.Errorf("alert = %q", got)
	}
}

func TestLogin(t *testing.T) {
	be := chi.NewRouter()
	be.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["email"] {
		case "admin@example.com":
			reply(w, 200, `{"success":true,"token":"t1","user":{"email":"admin@example.com","role":"admin","full_name":"Chị Quản Trị"}}`)
		case "user@example.com":
			reply(w, 200, `{"success":true,"token":"t2","user":{"email":"user@example.com","role":"user"}}`)
		case "quiet@example.com":
			reply(w, 200, `{"success":false}`)
		default:
			reply(w, 401, `{"success":false,"error":"Sai mật khẩu"}`)
		}
	})
	h := newHarness(t, be)

	cases := []struct {
		email  string
		status int
		alert  string
	}{
		{"admin@example.com", http.StatusSeeOther, ""},
		{"user@example.com", http.StatusUnauthorized, auth.MsgNotAdmin},
		{"x@example.com", http.StatusUnauthorized, "Sai mật khẩu"},
		{"quiet@example.com", http.StatusUnauthorized, auth.MsgLoginFailed},
		{"", http.StatusUnauthorized, auth.MsgMissingCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			rec := h.do(http.MethodPost, "/login", url.Values{"email": {tc.email}, "password": {"pw"}})
			if rec.Code != tc.status {
				t.Fatalf("status = %d", rec.Code)
			}
			if tc.alert == "" {
				if rec.Header().Get("Location") != "/" {
					t.Errorf("Location = %q", rec.Header().Get("Location"))
				}
				var sid *http.Cookie
				for _, c := range rec.Result().Cookies() {
					if c.Name == "vodadmin_session" {
						sid = c
					}
				}
				if sid == nil {
					t.Fatal("no session cookie")
				}
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(sid)
				s, err := h.mgr.Load(req)
				if err != nil || s.AccessToken != "t1" || s.Name != "Chị Quản Trị" {
					t.Fatalf("session = %+v, %v", s, err)
				}
				return
			}
			doc, err := goquery.NewDocumentFromReader(rec.Body)
			if err != nil {
				t.Fatal(err)
			}
			if got := doc.Find(".alert-danger").Text(); got != tc.alert {
				t.Errorf("alert = %q, want %q", got, tc.alert)
			}
			if v, _ := doc.Find(`input[name="email"]`).Attr("value"); v != tc.email {
				t.Errorf("email not kept: %q", v)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t, chi.NewRouter())
	h.signIn()
	rec := h.do(http.MethodPost, "/logout", url.Values{})
	if rec.Header().Get("Location") != "/login" {
		t.Fatalf("Location = %q", rec.Header().Get("Location"))
	}
	if rec := h.do(http.MethodGet, "/", nil); rec.Header().Get("Location") != "/login" {
		t.Fatal("session should be gone")
	}
}

func TestHealth(t *testing.T) {
	h := newHarness(t, chi.NewRouter())
	rec := h.do(http.MethodGet, "/healthz", nil)
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["backend"] != "closed" {
		t.Fatalf("health = %v", body)
	}
}

func TestBackTo(t *testing.T) {
	cases := map[string]string{
		"":                     "/fallback",
		"/films/3/edit":        "/films/3/edit",
		"//evil.example":       "/fallback",
		"https://evil.example": "/fallback",
		"/ok\r\nSet-Cookie: x": "/fallback",
	}
	for in, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/?back="+url.QueryEscape(in), nil)
		if got := backTo(r, "/fallback"); got != want {
			t.Errorf("backTo(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, "success", "Lưu thành công | xong")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	a, ok := popFlash(httptest.NewRecorder(), req)
	if !ok || a.Kind != "success" || a.Message != "Lưu thành công | xong" {
		t.Fatalf("flash = %+v, %v", a, ok)
	}
}
