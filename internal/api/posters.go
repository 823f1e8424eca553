package api

import (
	"context"
	"fmt"
	"net/http"
)

type Poster struct {
	ID     int64
	FilmID int64
	TypeID int64
	URL    string
}

func (p *Poster) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	p.ID = f.int64("Poster_id", "poster_id", "id")
	p.FilmID = f.int64("Film_id", "film_id")
	p.TypeID = f.int64("Postertype_id", "postertype_id")
	p.URL = f.str("Poster_url", "poster_url")
	return nil
}

type PosterPayload struct {
	FilmID int64  `json:"film_id"`
	TypeID int64  `json:"postertype_id"`
	URL    string `json:"poster_url"`
}

const postersPath = "/api/posters"

func (c *Client) ListPosters(ctx context.Context) ([]Poster, error) {
	var out []Poster
	if err := c.get(ctx, "posters.list", postersPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FilmPosters(ctx context.Context, filmID int64) ([]Poster, error) {
	var out []Poster
	if err := c.get(ctx, "posters.film", fmt.Sprintf("%s/film/%d", postersPath, filmID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePoster returns the new poster id, or 0 when the backend did not
// echo one.
func (c *Client) CreatePoster(ctx context.Context, p PosterPayload) (int64, error) {
	var created createdRef
	if err := c.send(ctx, "posters.create", http.MethodPost, postersPath, p, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdatePoster(ctx context.Context, id int64, p PosterPayload) error {
	return c.send(ctx, "posters.update", http.MethodPut, fmt.Sprintf("%s/%d", postersPath, id), p, nil)
}

func (c *Client) DeletePoster(ctx context.Context, id int64) error {
	return c.send(ctx, "posters.delete", http.MethodDelete, fmt.Sprintf("%s/%d", postersPath, id), nil, nil)
}
