package api

import (
	"context"
	"fmt"
	"net/http"
)

// Source is one stream URL of a film or episode at a given resolution.
type Source struct {
	ResolutionID   int64
	ResolutionType string
	URL            string
}

func (s *Source) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	s.ResolutionID = f.int64("resolution_id", "Resolution_id")
	s.ResolutionType = f.str("resolution_type", "Resolution_type")
	s.URL = f.str("source_url", "Source_url", "url")
	return nil
}

// Label is the resolution name, or its id when the name is missing.
func (s Source) Label() string {
	if s.ResolutionType != "" {
		return s.ResolutionType
	}
	if s.ResolutionID != 0 {
		return fmt.Sprint(s.ResolutionID)
	}
	return ""
}

type SourcePayload struct {
	ResolutionID int64  `json:"resolution_id"`
	URL          string `json:"source_url"`
}

func (c *Client) FilmSources(ctx context.Context, filmID int64) ([]Source, error) {
	var out []Source
	if err := c.get(ctx, "sources.film", fmt.Sprintf("%s/%d/sources", filmsPath, filmID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceFilmSources overwrites the full source set of a film.
func (c *Client) ReplaceFilmSources(ctx context.Context, filmID int64, sources []SourcePayload) error {
	return c.send(ctx, "sources.film.replace", http.MethodPut, fmt.Sprintf("%s/%d/sources", filmsPath, filmID), nonNil(sources), nil)
}

func (c *Client) EpisodeSources(ctx context.Context, episodeID int64) ([]Source, error) {
	var out []Source
	if err := c.get(ctx, "sources.episode", fmt.Sprintf("/api/episodes/%d/sources", episodeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ReplaceEpisodeSources(ctx context.Context, episodeID int64, sources []SourcePayload) error {
	return c.send(ctx, "sources.episode.replace", http.MethodPut, fmt.Sprintf("/api/episodes/%d/sources", episodeID), nonNil(sources), nil)
}

func nonNil(s []SourcePayload) []SourcePayload {
	if s == nil {
		return []SourcePayload{}
	}
	return s
}
