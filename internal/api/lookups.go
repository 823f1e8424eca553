package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Genre struct {
	ID   int64
	Name string
}

func (g *Genre) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	g.ID = f.int64("Genre_id", "genre_id", "id", "value")
	g.Name = f.str("Genre_name", "genre_name", "name", "label", "text")
	return nil
}

type Country struct {
	ID   int64
	Name string
}

func (c *Country) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	c.ID = f.int64("Country_id", "country_id", "id", "code", "value")
	c.Name = f.str("Country_name", "country_name", "name", "label", "text")
	return nil
}

type PosterType struct {
	ID   int64  `json:"Postertype_id"`
	Name string `json:"Postertype_name"`
}

type Resolution struct {
	ID   int64
	Type string
}

func (r *Resolution) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	r.ID = f.int64("Resolution_id", "resolution_id", "id")
	r.Type = f.str("Resolution_type", "resolution_type", "name")
	return nil
}

type GenrePayload struct {
	Name string `json:"genre_name"`
}

type CountryPayload struct {
	Name string `json:"country_name"`
}

type PosterTypePayload struct {
	Name string `json:"postertype_name"`
}

type ResolutionPayload struct {
	Type string `json:"resolution_type"`
}

const (
	genresPath      = "/api/genres"
	countriesPath   = "/api/countries"
	posterTypesPath = "/api/postertypes"
	resolutionsPath = "/api/resolutions"
)

func (c *Client) ListGenres(ctx context.Context) ([]Genre, error) {
	var out []Genre
	if err := c.get(ctx, "genres.list", genresPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchGenres(ctx context.Context, q string) ([]Genre, error) {
	var out []Genre
	if err := c.get(ctx, "genres.search", genresPath+"/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGenre(ctx context.Context, p GenrePayload) error {
	return c.send(ctx, "genres.create", http.MethodPost, genresPath+"/", p, nil)
}

func (c *Client) UpdateGenre(ctx context.Context, id int64, p GenrePayload) error {
	return c.send(ctx, "genres.update", http.MethodPut, fmt.Sprintf("%s/%d", genresPath, id), p, nil)
}

func (c *Client) DeleteGenre(ctx context.Context, id int64) error {
	return c.send(ctx, "genres.delete", http.MethodDelete, fmt.Sprintf("%s/%d", genresPath, id), nil, nil)
}

func (c *Client) ListCountries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.get(ctx, "countries.list", countriesPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchCountries(ctx context.Context, q string) ([]Country, error) {
	var out []Country
	if err := c.get(ctx, "countries.search", countriesPath+"/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCountry(ctx context.Context, p CountryPayload) error {
	return c.send(ctx, "countries.create", http.MethodPost, countriesPath+"/", p, nil)
}

func (c *Client) UpdateCountry(ctx context.Context, id int64, p CountryPayload) error {
	return c.send(ctx, "countries.update", http.MethodPut, fmt.Sprintf("%s/%d", countriesPath, id), p, nil)
}

func (c *Client) DeleteCountry(ctx context.Context, id int64) error {
	return c.send(ctx, "countries.delete", http.MethodDelete, fmt.Sprintf("%s/%d", countriesPath, id), nil, nil)
}

func (c *Client) ListPosterTypes(ctx context.Context) ([]PosterType, error) {
	var out []PosterType
	if err := c.get(ctx, "postertypes.list", posterTypesPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePosterType(ctx context.Context, p PosterTypePayload) error {
	return c.send(ctx, "postertypes.create", http.MethodPost, posterTypesPath+"/", p, nil)
}

func (c *Client) UpdatePosterType(ctx context.Context, id int64, p PosterTypePayload) error {
	return c.send(ctx, "postertypes.update", http.MethodPut, fmt.Sprintf("%s/%d", posterTypesPath, id), p, nil)
}

func (c *Client) DeletePosterType(ctx context.Context, id int64) error {
	return c.send(ctx, "postertypes.delete", http.MethodDelete, fmt.Sprintf("%s/%d", posterTypesPath, id), nil, nil)
}

func (c *Client) ListResolutions(ctx context.Context) ([]Resolution, error) {
	var out []Resolution
	if err := c.get(ctx, "resolutions.list", resolutionsPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateResolution(ctx context.Context, p ResolutionPayload) error {
	return c.send(ctx, "resolutions.create", http.MethodPost, resolutionsPath+"/", p, nil)
}

func (c *Client) UpdateResolution(ctx context.Context, id int64, p ResolutionPayload) error {
	return c.send(ctx, "resolutions.update", http.MethodPut, fmt.Sprintf("%s/%d", resolutionsPath, id), p, nil)
}

func (c *Client) DeleteResolution(ctx context.Context, id int64) error {
	return c.send(ctx, "resolutions.delete", http.MethodDelete, fmt.Sprintf("%s/%d", resolutionsPath, id), nil, nil)
}
