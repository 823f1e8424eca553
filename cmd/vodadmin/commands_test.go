package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vodadmin.yaml")
	body := "backend:\n  base_url: " + baseURL + "\nlog:\n  level: error\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func reply(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestListPrintsTableWithToken(t *testing.T) {
	var gotAuth string
	be := chi.NewRouter()
	be.Get("/api/genres/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		reply(w, `{"data":[{"Genre_id":1,"Genre_name":"Hành động"},{"Genre_id":2,"Genre_name":"Hài"}]}`)
	})
	srv := httptest.NewServer(be)
	defer srv.Close()

	out, err := runCLI(t, "--config", writeConfig(t, srv.URL), "list", "genres", "--token", "tok")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	for _, want := range []string{"Thể loại", "Hành động", "Hài", "2 mục"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListTokenFromEnv(t *testing.T) {
	var gotAuth string
	be := chi.NewRouter()
	be.Get("/api/resolutions/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		reply(w, `[]`)
	})
	srv := httptest.NewServer(be)
	defer srv.Close()
	t.Setenv(TokenEnvVar, "from-env")

	out, err := runCLI(t, "--config", writeConfig(t, srv.URL), "list", "resolutions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer from-env" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(out, "Không có dữ liệu") {
		t.Errorf("empty list output = %q", out)
	}
}

func TestListRejectsUnknownEntity(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	defer srv.Close()

	_, err := runCLI(t, "--config", writeConfig(t, srv.URL), "list", "songs")
	if err == nil || !strings.Contains(err.Error(), `unknown entity "songs"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestListSurfacesUnauthorized(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/accounts/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(be)
	defer srv.Close()

	_, err := runCLI(t, "--config", writeConfig(t, srv.URL), "list", "accounts")
	if err == nil || !strings.Contains(err.Error(), "list accounts") {
		t.Fatalf("err = %v", err)
	}
}

func TestStatsPrintsOverviewAndFilms(t *testing.T) {
	var overviewQuery, filmsQuery string
	be := chi.NewRouter()
	be.Get("/api/reports/overview", func(w http.ResponseWriter, r *http.Request) {
		overviewQuery = r.URL.RawQuery
		reply(w, `{"success":true,"counters":{"revenue":{"total_amount":"2500000"},"watching":{"total_watch_seconds":7500}},"filter":{"label":"Tháng 5/2025"}}`)
	})
	be.Get("/api/reports/films", func(w http.ResponseWriter, r *http.Request) {
		filmsQuery = r.URL.RawQuery
		reply(w, `{"success":true,"page":1,"total":1,"data":[{"Film_name":"Mai","views":"1200","avg_rating":"4.25","rating_count":8}]}`)
	})
	srv := httptest.NewServer(be)
	defer srv.Close()

	out, err := runCLI(t, "--config", writeConfig(t, srv.URL), "stats", "--month", "5", "--year", "2025", "--sort", "favorites")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if overviewQuery != "month=5&year=2025" {
		t.Errorf("overview query = %q", overviewQuery)
	}
	if !strings.Contains(filmsQuery, "sortBy=favorites") || !strings.Contains(filmsQuery, "page=1") {
		t.Errorf("films query = %q", filmsQuery)
	}
	for _, want := range []string{"Khoảng thời gian: Tháng 5/2025", "2.500.000 đ", "2h 5p", "Mai", "1.200", "4.2 (8)", "Trang 1 / 1 – 1 / 1 phim"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsReportFailure(t *testing.T) {
	be := chi.NewRouter()
	be.Get("/api/reports/overview", func(w http.ResponseWriter, r *http.Request) {
		reply(w, `{"success":false}`)
	})
	srv := httptest.NewServer(be)
	defer srv.Close()

	_, err := runCLI(t, "--config", writeConfig(t, srv.URL), "stats")
	if err == nil || !strings.Contains(err.Error(), "report unavailable") {
		t.Fatalf("err = %v", err)
	}
}

func TestHealthProbe(t *testing.T) {
	var status atomic.Value
	status.Store("ok")
	panel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		reply(w, `{"status":"`+status.Load().(string)+`","backend":"closed"}`)
	}))
	defer panel.Close()
	cfg := writeConfig(t, "http://127.0.0.1:1")

	out, err := runCLI(t, "--config", cfg, "health", "--url", panel.URL)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.HasPrefix(out, "ok backend=closed") {
		t.Errorf("output = %q", out)
	}

	status.Store("degraded")
	if _, err := runCLI(t, "--config", cfg, "health", "--url", panel.URL); err == nil {
		t.Fatal("degraded panel should fail the probe")
	}
}

func TestLocalURL(t *testing.T) {
	cases := map[string]string{
		":8081":          "http://127.0.0.1:8081",
		"0.0.0.0:9000":   "http://127.0.0.1:9000",
		"10.0.0.5:8081":  "http://10.0.0.5:8081",
		"admin.internal": "http://admin.internal",
	}
	for in, want := range cases {
		if got := localURL(in); got != want {
			t.Errorf("localURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	cc := &commandContext{configPath: writeConfig(t, "http://127.0.0.1:1")}
	if err := cc.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	store, err := openStore(context.Background(), cc.cfg.Session, cc.log)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	_ = store.Close()

	sc := cc.cfg.Session
	sc.Backend = "redis"
	if _, err := openStore(context.Background(), sc, cc.log); err == nil {
		t.Fatal("unknown backend accepted")
	}
}
