package web

import (
	"context"
	"fmt"
	"net/http"

	"vodadmin/internal/api"
	"vodadmin/internal/forms"
)

// sourceRow is one resolution on the sources form with its current URL.
type sourceRow struct {
	Resolution api.Resolution
	URL        string
}

type sourcesPage struct {
	Heading string
	Action  string
	Back    string
	Rows    []sourceRow
	// Extra lists stored sources whose resolution no longer exists.
	Extra []api.Source
	// Locked hides the save form when either list failed to load.
	Locked bool
}

func sourceRows(resolutions []api.Resolution, sources []api.Source) ([]sourceRow, []api.Source) {
	byRes := make(map[int64]string, len(sources))
	for _, src := range sources {
		byRes[src.ResolutionID] = src.URL
	}
	rows := make([]sourceRow, 0, len(resolutions))
	known := make(map[int64]bool, len(resolutions))
	for _, res := range resolutions {
		known[res.ID] = true
		rows = append(rows, sourceRow{Resolution: res, URL: byRes[res.ID]})
	}
	var extra []api.Source
	for _, src := range sources {
		if !known[src.ResolutionID] {
			extra = append(extra, src)
		}
	}
	return rows, extra
}

type sourceLoader func(c *api.Client, ctx context.Context, id int64) ([]api.Source, error)

func (s *Server) renderSources(w http.ResponseWriter, r *http.Request, op string, load sourceLoader, page sourcesPage, ownerID int64) {
	ctx := r.Context()
	c := s.client(r)
	v := view{Title: "Nguồn phát", Nav: "films"}

	resolutions, err := s.lookups.Resolutions(ctx, c)
	if err != nil {
		if s.abort(w, r, "resolutions.list", err) {
			return
		}
		v.danger(msgLoadFailed + "độ phân giải")
		page.Locked = true
	}
	sources, err := load(c, ctx, ownerID)
	if err != nil {
		if s.abort(w, r, op, err) {
			return
		}
		v.danger(msgLoadFailed + "nguồn phát")
		page.Locked = true
	}
	page.Rows, page.Extra = sourceRows(resolutions, sources)
	v.Data = page
	s.render(w, r, "sources", v)
}

func (s *Server) handleFilmSources(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	heading := fmt.Sprintf("Phim #%d", filmID)
	if film, err := s.client(r).GetFilm(r.Context(), filmID); err == nil && film.Name != "" {
		heading = film.Name
	} else if err != nil && s.abort(w, r, "films.get", err) {
		return
	}
	page := sourcesPage{
		Heading: heading,
		Action:  filmPath(filmID) + "/sources",
		Back:    "/films",
	}
	s.renderSources(w, r, "films.sources", (*api.Client).FilmSources, page, filmID)
}

func (s *Server) handleEpisodeSources(w http.ResponseWriter, r *http.Request) {
	episodeID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := backTo(r, "/films")
	page := sourcesPage{
		Heading: fmt.Sprintf("Tập #%d", episodeID),
		Action:  fmt.Sprintf("/episodes/%d/sources", episodeID),
		Back:    back,
	}
	s.renderSources(w, r, "episodes.sources", (*api.Client).EpisodeSources, page, episodeID)
}

// Saving replaces the whole source list; rows left empty are dropped.
func (s *Server) handleFilmSourcesSave(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	err := s.client(r).ReplaceFilmSources(r.Context(), filmID, forms.Sources(r.PostForm))
	s.finish(w, r, "films.sources.save", err, msgSaveFailed, msgSaved, filmPath(filmID)+"/sources")
}

func (s *Server) handleEpisodeSourcesSave(w http.ResponseWriter, r *http.Request) {
	episodeID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := backTo(r, "/films")
	err := s.client(r).ReplaceEpisodeSources(r.Context(), episodeID, forms.Sources(r.PostForm))
	s.finish(w, r, "episodes.sources.save", err, msgSaveFailed, msgSaved, back)
}
