package web

import (
	"fmt"
	"net/http"

	"vodadmin/internal/catalog"
	"vodadmin/internal/forms"
)

// Season and episode forms live on the film edit page and carry that
// page's URL in "back".

func (s *Server) handleSeasonCreate(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := backTo(r, filmPath(filmID)+"/edit")
	p, err := forms.Season(r.PostForm)
	if err == nil {
		err = s.client(r).CreateSeason(r.Context(), filmID, p)
	}
	s.finish(w, r, "seasons.create", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleSeasonUpdate(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := backTo(r, "/films")
	p, err := forms.Season(r.PostForm)
	if err == nil {
		err = s.client(r).UpdateSeason(r.Context(), seasonID, p)
	}
	s.finish(w, r, "seasons.update", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleSeasonDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := backTo(r, "/films")
	action := fmt.Sprintf("/seasons/%d/delete", seasonID)
	s.renderConfirm(w, r, "Xóa mùa",
		"Xóa mùa này sẽ xóa luôn các tập của nó. Bạn có chắc?", action, back)
}

func (s *Server) handleSeasonDelete(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := backTo(r, "/films")
	if !confirmed(r) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	err := s.client(r).DeleteSeason(r.Context(), seasonID)
	s.finish(w, r, "seasons.delete", err, msgDeleteFailed, msgDeleted, back)
}

// handleEpisodeCreate numbers a new episode one past the season's highest
// when the admin left the number empty.
func (s *Server) handleEpisodeCreate(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	back := backTo(r, "/films")
	ctx := r.Context()
	c := s.client(r)

	next := 0
	if r.PostForm.Get("number") == "" {
		episodes, err := c.ListEpisodes(ctx, seasonID)
		if err != nil {
			s.finish(w, r, "episodes.list", err, msgSaveFailed, "", back)
			return
		}
		next = catalog.NextEpisodeNumber(episodes)
	}
	p, err := forms.Episode(r.PostForm, next)
	if err == nil {
		err = c.CreateEpisode(ctx, seasonID, p)
	}
	s.finish(w, r, "episodes.create", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleEpisodeUpdate(w http.ResponseWriter, r *http.Request) {
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
	p, err := forms.Episode(r.PostForm, 0)
	if err == nil {
		err = s.client(r).UpdateEpisode(r.Context(), episodeID, p)
	}
	s.finish(w, r, "episodes.update", err, msgSaveFailed, msgSaved, back)
}

func (s *Server) handleEpisodeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	episodeID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := backTo(r, "/films")
	s.renderConfirm(w, r, "Xóa tập", "Bạn có chắc muốn xóa tập này?",
		fmt.Sprintf("/episodes/%d/delete", episodeID), back)
}

func (s *Server) handleEpisodeDelete(w http.ResponseWriter, r *http.Request) {
	episodeID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := backTo(r, "/films")
	if !confirmed(r) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	err := s.client(r).DeleteEpisode(r.Context(), episodeID)
	s.finish(w, r, "episodes.delete", err, msgDeleteFailed, msgDeleted, back)
}
