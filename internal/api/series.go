package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

type Season struct {
	ID       int64
	FilmID   int64
	Name     string
	Number   int
	Episodes []Episode
}

func (s *Season) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	s.ID = f.int64("id", "Season_id", "season_id")
	s.FilmID = f.int64("film_id", "Film_id")
	s.Name = f.str("name", "Season_name", "season_name")
	s.Number = f.int("number", "Season_number", "season_number")
	if raw, ok := f.raw("episodes"); ok {
		var eps []Episode
		if err := json.Unmarshal(raw, &eps); err != nil {
			return err
		}
		s.Episodes = eps
	}
	return nil
}

// Episode.Number is zero when the backend did not send one.
type Episode struct {
	ID       int64
	SeasonID int64
	Number   int
	Title    string
	Duration int
	Sources  []Source
}

func (e *Episode) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	e.ID = f.int64("id", "Episode_id", "episode_id")
	e.SeasonID = f.int64("season_id", "Season_id")
	e.Number = f.int("number", "Episode_number", "episode_number")
	e.Title = f.str("title", "Episode_title", "episode_title")
	e.Duration = f.int("duration", "Duration")
	if raw, ok := f.raw("sources"); ok {
		var srcs []Source
		if err := json.Unmarshal(raw, &srcs); err != nil {
			return err
		}
		e.Sources = srcs
	}
	return nil
}

type SeasonPayload struct {
	Name string `json:"name"`
}

type EpisodePayload struct {
	Title    string `json:"title"`
	Duration *int   `json:"duration"`
	Number   int    `json:"number,omitempty"`
}

func (c *Client) ListSeasons(ctx context.Context, filmID int64) ([]Season, error) {
	var out []Season
	if err := c.get(ctx, "seasons.list", fmt.Sprintf("%s/%d/seasons", filmsPath, filmID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSeason(ctx context.Context, filmID int64, p SeasonPayload) error {
	return c.send(ctx, "seasons.create", http.MethodPost, fmt.Sprintf("%s/%d/seasons", filmsPath, filmID), p, nil)
}

func (c *Client) UpdateSeason(ctx context.Context, seasonID int64, p SeasonPayload) error {
	return c.send(ctx, "seasons.update", http.MethodPut, fmt.Sprintf("/api/seasons/%d", seasonID), p, nil)
}

func (c *Client) DeleteSeason(ctx context.Context, seasonID int64) error {
	return c.send(ctx, "seasons.delete", http.MethodDelete, fmt.Sprintf("/api/seasons/%d", seasonID), nil, nil)
}

func (c *Client) ListEpisodes(ctx context.Context, seasonID int64) ([]Episode, error) {
	var out []Episode
	if err := c.get(ctx, "episodes.list", fmt.Sprintf("/api/seasons/%d/episodes", seasonID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEpisode(ctx context.Context, seasonID int64, p EpisodePayload) error {
	return c.send(ctx, "episodes.create", http.MethodPost, fmt.Sprintf("/api/seasons/%d/episodes", seasonID), p, nil)
}

func (c *Client) UpdateEpisode(ctx context.Context, episodeID int64, p EpisodePayload) error {
	return c.send(ctx, "episodes.update", http.MethodPut, fmt.Sprintf("/api/episodes/%d", episodeID), p, nil)
}

func (c *Client) DeleteEpisode(ctx context.Context, episodeID int64) error {
	return c.send(ctx, "episodes.delete", http.MethodDelete, fmt.Sprintf("/api/episodes/%d", episodeID), nil, nil)
}
