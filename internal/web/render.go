package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"vodadmin/internal/api"
	"vodadmin/internal/auth"
	"vodadmin/internal/catalog"
	"vodadmin/internal/report"
	"vodadmin/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var sharedTemplates = []string{"templates/layout.html", "templates/partials.html"}

// alert is a bootstrap-style message box. Kind is one of success, danger,
// warning or info.
type alert struct {
	Kind    string
	Message string
}

type view struct {
	Title  string
	Nav    string
	User   *session.Session
	Alerts []alert
	Data   any
}

func (v *view) danger(msg string) {
	v.Alerts = append(v.Alerts, alert{Kind: "danger", Message: msg})
}

var templateFuncs = template.FuncMap{
	"money":    func(v any) string { return report.Money(toFloat(v)) },
	"count":    func(v any) string { return report.Count(toFloat(v)) },
	"duration": func(v any) string { return report.Duration(toFloat(v)) },
	"rating": func(v *api.Amount) string {
		if v == nil {
			return report.Rating(nil)
		}
		f := float64(*v)
		return report.Rating(&f)
	},
	"badge":         report.StatusBadge,
	"seasonLabel":   catalog.SeasonLabel,
	"episodeNumber": catalog.EpisodeNumber,
	"add":           func(a, b int) int { return a + b },
	"hasID": func(ids []int64, id int64) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
	"yesno":    yesno,
	"filmKind": catalog.FilmKind,
	"orDash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	},
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case api.Amount:
		return float64(n)
	case *api.Amount:
		if n == nil {
			return 0
		}
		return float64(*n)
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// parsePages builds one template set per page file, each sharing the
// layout and partials.
func parsePages() (map[string]*template.Template, error) {
	base, err := template.New("root").Funcs(templateFuncs).ParseFS(templateFS, sharedTemplates...)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if isShared(f) {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return pages, nil
}

func isShared(f string) bool {
	for _, s := range sharedTemplates {
		if s == f {
			return true
		}
	}
	return false
}

// render executes page into a buffer first so a template error never
// leaves half a page on the wire.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, v view) {
	s.renderStatus(w, r, http.StatusOK, page, v)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	t, ok := s.pages[page]
	if !ok {
		s.log.Error().Str("page", page).Msg("unknown page template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	v.User = auth.SessionFromContext(r.Context())
	if f, ok := popFlash(w, r); ok {
		v.Alerts = append([]alert{f}, v.Alerts...)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

const flashCookie = "vodadmin_flash"

// setFlash leaves a one-shot alert for the page the client is redirected
// to next.
func setFlash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) (alert, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return alert{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return alert{}, false
	}
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok || msg == "" {
		return alert{}, false
	}
	switch kind {
	case "success", "danger", "warning", "info":
	default:
		kind = "info"
	}
	return alert{Kind: kind, Message: msg}, true
}
