package web

import (
	"net/http"

	"vodadmin/internal/api"
)

const (
	dashboardTopFilms    = 5
	dashboardRevenueDays = 30
)

type dashboardPage struct {
	Stats     api.DashboardStats
	TopFilms  []api.TopFilm
	Genres    []api.GenreShare
	Countries []api.CountryShare
	Revenue   []api.RevenuePoint
}

// handleDashboard loads each panel on its own; one failing panel leaves
// the rest of the page intact.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := s.client(r)
	v := view{Title: "Tổng quan", Nav: "dashboard"}
	var page dashboardPage
	var err error

	if page.Stats, err = c.DashboardStats(ctx); err != nil {
		if s.abort(w, r, "dashboard.stats", err) {
			return
		}
		v.danger("Không tải được số liệu tổng quan")
	}
	if page.TopFilms, err = c.TopFilms(ctx, "views", dashboardTopFilms); err != nil {
		if s.abort(w, r, "dashboard.top_films", err) {
			return
		}
		v.danger(msgLoadFailed + "phim xem nhiều")
	}
	if page.Genres, err = c.GenreDistribution(ctx); err != nil {
		if s.abort(w, r, "dashboard.genres", err) {
			return
		}
		v.danger(msgLoadFailed + "thể loại")
	}
	if page.Countries, err = c.CountryDistribution(ctx); err != nil {
		if s.abort(w, r, "dashboard.countries", err) {
			return
		}
		v.danger(msgLoadFailed + "quốc gia")
	}
	if page.Revenue, err = c.Revenue(ctx, dashboardRevenueDays); err != nil {
		if s.abort(w, r, "dashboard.revenue", err) {
			return
		}
		v.danger("Không tải được doanh thu")
	}
	v.Data = page
	s.render(w, r, "dashboard", v)
}
