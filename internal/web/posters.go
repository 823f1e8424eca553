package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vodadmin/internal/api"
	"vodadmin/internal/forms"
)

type postersPage struct {
	Query string
	Films []api.Film
}

// posterRow is one poster type of a film with the poster stored for it.
type posterRow struct {
	Type   api.PosterType
	Poster *api.Poster
	// Confirm is set on the row whose poster is about to be removed.
	Confirm bool
}

type filmPostersPage struct {
	Film   api.Film
	Action string
	Rows   []posterRow
}

func (s *Server) handlePosters(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	v := view{Title: "Quản lý poster", Nav: "posters"}
	films, err := s.client(r).ListFilms(r.Context())
	if err != nil {
		if s.abort(w, r, "films.list", err) {
			return
		}
		v.danger(msgLoadFailed + "phim")
	}
	v.Data = postersPage{Query: q, Films: filterFilms(films, q)}
	s.render(w, r, "posters", v)
}

func posterByType(posters []api.Poster, typeID int64) *api.Poster {
	for i := range posters {
		if posters[i].TypeID == typeID {
			return &posters[i]
		}
	}
	return nil
}

func (s *Server) handleFilmPosters(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	c := s.client(r)
	v := view{Title: "Poster của phim", Nav: "posters"}
	page := filmPostersPage{Film: api.Film{ID: filmID}, Action: fmt.Sprintf("/posters/film/%d", filmID)}

	film, err := c.GetFilm(ctx, filmID)
	if err != nil {
		if s.abort(w, r, "films.get", err) {
			return
		}
		v.danger("Không tải được thông tin phim")
	} else {
		page.Film = film
	}
	types, err := s.lookups.PosterTypes(ctx, c)
	if err != nil {
		if s.abort(w, r, "postertypes.list", err) {
			return
		}
		v.danger(msgLoadFailed + "loại poster")
	}
	posters, err := c.FilmPosters(ctx, filmID)
	if err != nil {
		if s.abort(w, r, "posters.film", err) {
			return
		}
		v.danger(msgLoadFailed + "poster")
	}

	confirmType, _ := strconv.ParseInt(r.URL.Query().Get("confirm_delete"), 10, 64)
	for _, t := range types {
		p := posterByType(posters, t.ID)
		page.Rows = append(page.Rows, posterRow{
			Type:    t,
			Poster:  p,
			Confirm: p != nil && t.ID == confirmType,
		})
	}
	v.Data = page
	s.render(w, r, "film_posters", v)
}

// handleFilmPosterSave saves one poster-type row. The stored poster is
// looked up again here rather than trusted from the form.
func (s *Server) handleFilmPosterSave(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := fmt.Sprintf("/posters/film/%d", filmID)
	typeID := formID(r, "postertype_id")
	if typeID <= 0 {
		setFlash(w, "danger", "Vui lòng chọn loại poster")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	ctx := r.Context()
	c := s.client(r)

	posters, err := c.FilmPosters(ctx, filmID)
	if err != nil {
		s.finish(w, r, "posters.film", err, msgSaveFailed, "", back)
		return
	}
	var existingID int64
	if p := posterByType(posters, typeID); p != nil {
		existingID = p.ID
	}
	rawURL := r.PostForm.Get("poster_url")

	switch forms.PosterSave(existingID, rawURL, confirmed(r)) {
	case forms.PosterNoop:
		http.Redirect(w, r, back, http.StatusSeeOther)
	case forms.PosterConfirmDelete:
		http.Redirect(w, r, fmt.Sprintf("%s?confirm_delete=%d", back, typeID), http.StatusSeeOther)
	case forms.PosterDelete:
		err := c.DeletePoster(ctx, existingID)
		s.finish(w, r, "posters.delete", err, msgDeleteFailed, msgDeleted, back)
	case forms.PosterUpdate:
		err := c.UpdatePoster(ctx, existingID, forms.Poster(filmID, typeID, rawURL))
		s.finish(w, r, "posters.update", err, msgSaveFailed, msgSaved, back)
	case forms.PosterCreate:
		_, err := c.CreatePoster(ctx, forms.Poster(filmID, typeID, rawURL))
		s.finish(w, r, "posters.create", err, msgSaveFailed, msgSaved, back)
	}
}
