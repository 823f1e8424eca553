// Package web serves the admin panel: one HTML page per catalog screen,
// with form posts turned into backend calls made with the signed-in
// admin's token.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"vodadmin/internal/api"
	"vodadmin/internal/auth"
	"vodadmin/internal/catalog"
	"vodadmin/internal/session"
)

type Deps struct {
	API      *api.Client
	Sessions *session.Manager
	Auth     *auth.Service
	Lookups  *catalog.Lookups
	Logger   zerolog.Logger
	// MetricsToken enables /metrics behind X-API-Token when set.
	MetricsToken string
	// LoginRateLimit is login posts per IP per minute; 0 disables it.
	LoginRateLimit int
	Now            func() time.Time
}

type Server struct {
	api          *api.Client
	sessions     *session.Manager
	auth         *auth.Service
	lookups      *catalog.Lookups
	log          zerolog.Logger
	metricsToken string
	loginLimit   int
	now          func() time.Time
	pages        map[string]*template.Template
	resources    []*resource
}

func New(d Deps) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	lookups := d.Lookups
	if lookups == nil {
		lookups = catalog.NewLookups(0)
	}
	s := &Server{
		api:          d.API,
		sessions:     d.Sessions,
		auth:         d.Auth,
		lookups:      lookups,
		log:          d.Logger,
		metricsToken: d.MetricsToken,
		loginLimit:   d.LoginRateLimit,
		now:          now,
		pages:        pages,
	}
	s.resources = s.catalogResources()
	return s, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metricsToken != "" {
		r.With(auth.RequireToken(s.metricsToken)).Handle("/metrics", promhttp.Handler())
	}

	r.Get("/login", s.handleLoginPage)
	login := r.With()
	if s.loginLimit > 0 {
		login = r.With(httprate.Limit(s.loginLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(s.handleLoginLimited),
		))
	}
	login.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(s.sessions, "/login"))

		r.Post("/logout", s.handleLogout)
		r.Get("/", s.handleDashboard)

		for _, res := range s.resources {
			s.mountResource(r, res)
		}
		r.Get("/accounts/{id}/payments", s.handlePayments)

		r.Get("/films", s.handleFilms)
		r.Get("/films/new", s.handleFilmNew)
		r.Post("/films", s.handleFilmCreate)
		r.Get("/films/{id}", s.handleFilmDetail)
		r.Get("/films/{id}/edit", s.handleFilmEdit)
		r.Post("/films/{id}/edit", s.handleFilmUpdate)
		r.Get("/films/{id}/delete", s.handleFilmDeleteConfirm)
		r.Post("/films/{id}/delete", s.handleFilmDelete)

		r.Post("/films/{id}/seasons", s.handleSeasonCreate)
		r.Post("/seasons/{id}", s.handleSeasonUpdate)
		r.Get("/seasons/{id}/delete", s.handleSeasonDeleteConfirm)
		r.Post("/seasons/{id}/delete", s.handleSeasonDelete)
		r.Post("/seasons/{id}/episodes", s.handleEpisodeCreate)
		r.Post("/episodes/{id}", s.handleEpisodeUpdate)
		r.Get("/episodes/{id}/delete", s.handleEpisodeDeleteConfirm)
		r.Post("/episodes/{id}/delete", s.handleEpisodeDelete)

		r.Get("/films/{id}/sources", s.handleFilmSources)
		r.Post("/films/{id}/sources", s.handleFilmSourcesSave)
		r.Get("/episodes/{id}/sources", s.handleEpisodeSources)
		r.Post("/episodes/{id}/sources", s.handleEpisodeSourcesSave)

		r.Get("/posters", s.handlePosters)
		r.Get("/posters/film/{id}", s.handleFilmPosters)
		r.Post("/posters/film/{id}", s.handleFilmPosterSave)

		r.Get("/stats", s.handleStats)
	})
	return r
}
