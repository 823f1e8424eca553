package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vodadmin/internal/api"
	"vodadmin/internal/catalog"
	"vodadmin/internal/forms"
)

var filmStatuses = []string{"Đang chiếu", "Sắp chiếu", "Hoàn thành"}

type filmsPage struct {
	Query string
	Films []api.Film
}

type filmForm struct {
	Action       string
	Film         api.Film
	Genres       []api.Genre
	Countries    []api.Country
	Actors       []api.Actor
	Statuses     []string
	GenreControl string

	// Series structure, only filled when editing a series.
	Seasons     []api.Season
	Season      *api.Season
	Episodes    []api.Episode
	NextEpisode int
	Self        string
}

func filmPath(filmID int64) string { return fmt.Sprintf("/films/%d", filmID) }

func (s *Server) handleFilms(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	v := view{Title: "Quản lý phim", Nav: "films"}
	films, err := s.client(r).ListFilms(r.Context())
	if err != nil {
		if s.abort(w, r, "films.list", err) {
			return
		}
		v.danger(msgLoadFailed + "phim")
	}
	v.Data = filmsPage{Query: q, Films: filterFilms(films, q)}
	s.render(w, r, "films", v)
}

// filterFilms keeps films whose name or original name contains q,
// ignoring case.
func filterFilms(films []api.Film, q string) []api.Film {
	if q == "" {
		return films
	}
	q = strings.ToLower(q)
	out := make([]api.Film, 0, len(films))
	for _, f := range films {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.OriginalName), q) {
			out = append(out, f)
		}
	}
	return out
}

// loadFilmLookups fills the selects of the film form. A failed list only
// costs its select.
func (s *Server) loadFilmLookups(w http.ResponseWriter, r *http.Request, v *view, f *filmForm) bool {
	ctx := r.Context()
	c := s.client(r)
	var err error
	if f.Genres, err = s.lookups.Genres(ctx, c); err != nil {
		if s.abort(w, r, "genres.list", err) {
			return false
		}
		v.danger(msgLoadFailed + "thể loại")
		// Without the marker the save leaves the film's genres alone.
		f.GenreControl = ""
	}
	if f.Countries, err = s.lookups.Countries(ctx, c); err != nil {
		if s.abort(w, r, "countries.list", err) {
			return false
		}
		v.danger(msgLoadFailed + "quốc gia")
	}
	if f.Actors, err = s.lookups.Actors(ctx, c); err != nil {
		if s.abort(w, r, "actors.list", err) {
			return false
		}
		v.danger(msgLoadFailed + "diễn viên")
	}
	return true
}

func (s *Server) handleFilmNew(w http.ResponseWriter, r *http.Request) {
	v := view{Title: "Thêm phim", Nav: "films"}
	f := filmForm{Action: "/films", Statuses: filmStatuses, GenreControl: forms.GenreControl}
	if !s.loadFilmLookups(w, r, &v, &f) {
		return
	}
	v.Data = f
	s.render(w, r, "film_form", v)
}

func (s *Server) handleFilmCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p, err := forms.Film(r.PostForm)
	if err != nil {
		s.finish(w, r, "films.create", err, msgSaveFailed, "", "/films/new")
		return
	}
	newID, err := s.client(r).CreateFilm(r.Context(), p)
	back := "/films"
	if err == nil && newID > 0 {
		back = filmPath(newID) + "/edit"
	}
	s.finish(w, r, "films.create", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleFilmDetail(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	v := view{Title: "Chi tiết phim", Nav: "films"}
	detail, err := s.client(r).FilmDetail(r.Context(), filmID)
	if err != nil {
		if s.abort(w, r, "films.detail", err) {
			return
		}
		v.danger("Không tải được thông tin phim")
	}
	v.Data = detail
	s.render(w, r, "film_detail", v)
}

func (s *Server) handleFilmEdit(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	c := s.client(r)
	v := view{Title: "Sửa phim", Nav: "films"}

	film, err := c.GetFilm(ctx, filmID)
	if err != nil {
		if s.abort(w, r, "films.get", err) {
			return
		}
		setFlash(w, "danger", failReason("Không tải được thông tin phim", err))
		http.Redirect(w, r, "/films", http.StatusSeeOther)
		return
	}
	f := filmForm{
		Action:       filmPath(filmID) + "/edit",
		Film:         film,
		Statuses:     filmStatuses,
		GenreControl: forms.GenreControl,
		Self:         filmPath(filmID) + "/edit",
	}
	if !s.loadFilmLookups(w, r, &v, &f) {
		return
	}
	if film.IsSeries && !s.loadSeries(w, r, &v, &f) {
		return
	}
	v.Data = f
	s.render(w, r, "film_form", v)
}

// loadSeries fills the season/episode part of the edit page. The season
// shown is the one named by ?season=, else the first.
func (s *Server) loadSeries(w http.ResponseWriter, r *http.Request, v *view, f *filmForm) bool {
	ctx := r.Context()
	c := s.client(r)
	seasons, err := c.ListSeasons(ctx, f.Film.ID)
	if err != nil {
		if s.abort(w, r, "seasons.list", err) {
			return false
		}
		v.danger(msgLoadFailed + "mùa")
		return true
	}
	f.Seasons = seasons
	f.NextEpisode = 1

	wanted, _ := strconv.ParseInt(r.URL.Query().Get("season"), 10, 64)
	season, ok := catalog.FindSeason(seasons, wanted)
	if !ok {
		return true
	}
	f.Season = &season
	f.Self = fmt.Sprintf("%s/edit?season=%d", filmPath(f.Film.ID), season.ID)

	episodes, err := c.ListEpisodes(ctx, season.ID)
	if err != nil {
		if s.abort(w, r, "episodes.list", err) {
			return false
		}
		v.danger(msgLoadFailed + "tập")
		return true
	}
	f.Episodes = episodes
	f.NextEpisode = catalog.NextEpisodeNumber(episodes)
	return true
}

func (s *Server) handleFilmUpdate(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := filmPath(filmID) + "/edit"
	p, err := forms.Film(r.PostForm)
	if err == nil {
		err = s.client(r).UpdateFilm(r.Context(), filmID, p)
	}
	s.finish(w, r, "films.update", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleFilmDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	label := fmt.Sprintf("#%d", filmID)
	film, err := s.client(r).GetFilm(r.Context(), filmID)
	if err == nil && film.Name != "" {
		label = film.Name
	} else if err != nil && s.abort(w, r, "films.get", err) {
		return
	}
	s.renderConfirm(w, r, "Xóa phim",
		fmt.Sprintf("Bạn có chắc muốn xóa phim \"%s\"?", label),
		filmPath(filmID)+"/delete", "/films")
}

func (s *Server) handleFilmDelete(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, "/films", http.StatusSeeOther)
		return
	}
	err := s.client(r).DeleteFilm(r.Context(), filmID)
	s.finish(w, r, "films.delete", err, msgDeleteFailed, msgDeleted, "/films")
}
