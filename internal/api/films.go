package api

import (
	"context"
	"fmt"
	"net/http"
)

// Film is a catalog title as returned by the list and single-film
// endpoints. The backend has shipped both Film_* and lowercase spellings,
// and sometimes nests details under film_info; decoding folds them.
type Film struct {
	ID             int64
	Name           string
	Slug           string
	OriginalName   string
	Overview       string
	Year           int
	Duration       int
	IsSeries       bool
	Active         bool
	PremiumOnly    bool
	CountryID      int64
	CountryName    string
	MaturityRating string
	Status         string
	TrailerURL     string
	PosterURL      string
	BackdropURL    string
	Language       string
	GenreIDs       []int64
	CastIDs        []int64
}

func (m *Film) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	if info, ok := f.raw("film_info", "info"); ok {
		if nested, err := decodeFields(info); err == nil {
			for k, v := range nested {
				if _, exists := f[k]; !exists {
					f[k] = v
				}
			}
		}
	}
	m.ID = f.int64("id", "Film_id", "film_id")
	m.Name = f.str("name", "Film_name", "film_name")
	m.Slug = f.str("slug")
	m.OriginalName = f.str("original_name", "Original_name")
	m.Overview = f.str("overview", "description", "Description")
	m.Year = f.int("year", "Release_year", "release_year")
	m.Duration = f.int("duration", "Duration")
	m.IsSeries, _ = f.boolean("isSeries", "is_series")
	if active, ok := f.boolean("active"); ok {
		m.Active = active
	} else if deleted, ok := f.boolean("is_deleted"); ok {
		m.Active = !deleted
	} else {
		m.Active = true
	}
	m.PremiumOnly, _ = f.boolean("is_premium_only")
	m.CountryID = f.int64("country_id", "Country_id")
	m.CountryName = f.str("Country_name", "country_name")
	m.MaturityRating = f.str("maturity_rating", "Maturity_rating")
	m.Status = f.str("film_status", "Film_status")
	m.TrailerURL = f.str("trailer_url", "Trailer_url")
	m.PosterURL = f.str("poster_url")
	m.BackdropURL = f.str("backdrop_url")
	m.Language = f.str("language")
	m.GenreIDs = f.ints("genre_ids")
	m.CastIDs = f.ints("cast_ids")
	return nil
}

// FilmPayload is the create/update body. Optional info fields are sent as
// JSON null when the form left them empty.
type FilmPayload struct {
	Name     string          `json:"film_name"`
	IsSeries bool            `json:"is_series"`
	Info     FilmInfoPayload `json:"film_info"`
	// GenreIDs is omitted when the form had no genre control at all and
	// sent as [] when the control was present but nothing was ticked.
	GenreIDs *[]int64 `json:"genre_ids,omitempty"`
	CastIDs  []int64  `json:"cast_ids,omitempty"`
}

type FilmInfoPayload struct {
	OriginalName   *string `json:"original_name"`
	Description    *string `json:"description"`
	ReleaseYear    *int    `json:"release_year"`
	Duration       *int    `json:"duration"`
	CountryID      *int64  `json:"country_id"`
	MaturityRating *string `json:"maturity_rating"`
	FilmStatus     *string `json:"film_status"`
	TrailerURL     *string `json:"trailer_url"`
	ProcessEpisode int     `json:"process_episode"`
	TotalEpisode   int     `json:"total_episode"`
}

// FilmDetail is the aggregate behind the read-only detail view.
type FilmDetail struct {
	Film struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		IsSeries bool   `json:"is_series"`
	} `json:"film"`
	Info      FilmInfo     `json:"info"`
	Genres    []Genre      `json:"genres"`
	Posters   []Poster     `json:"posters"`
	Sources   []Source     `json:"sources"`
	Cast      []CastMember `json:"cast"`
	Seasons   []Season     `json:"seasons"`
	HasSeries bool         `json:"has_series"`
}

type FilmInfo struct {
	OriginalName   string `json:"original_name"`
	Description    string `json:"description"`
	ReleaseYear    int    `json:"release_year"`
	Duration       int    `json:"duration"`
	MaturityRating string `json:"maturity_rating"`
	FilmStatus     string `json:"film_status"`
	TrailerURL     string `json:"trailer_url"`
	Country        struct {
		Name string `json:"name"`
	} `json:"country"`
}

type CastMember struct {
	Name          string `json:"name"`
	CharacterName string `json:"character_name"`
}

const filmsPath = "/api/films"

func (c *Client) ListFilms(ctx context.Context) ([]Film, error) {
	var out []Film
	if err := c.get(ctx, "films.list", filmsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFilm(ctx context.Context, id int64) (Film, error) {
	var out Film
	if err := c.get(ctx, "films.get", fmt.Sprintf("%s/%d", filmsPath, id), nil, &out); err != nil {
		return Film{}, err
	}
	return out, nil
}

func (c *Client) FilmDetail(ctx context.Context, id int64) (FilmDetail, error) {
	var out FilmDetail
	if err := c.get(ctx, "films.detail", fmt.Sprintf("%s/%d/detail", filmsPath, id), nil, &out); err != nil {
		return FilmDetail{}, err
	}
	return out, nil
}

// CreateFilm returns the new film id when the backend reports one.
func (c *Client) CreateFilm(ctx context.Context, p FilmPayload) (int64, error) {
	var created createdRef
	if err := c.send(ctx, "films.create", http.MethodPost, filmsPath, p, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdateFilm(ctx context.Context, id int64, p FilmPayload) error {
	return c.send(ctx, "films.update", http.MethodPut, fmt.Sprintf("%s/%d", filmsPath, id), p, nil)
}

func (c *Client) DeleteFilm(ctx context.Context, id int64) error {
	return c.send(ctx, "films.delete", http.MethodDelete, fmt.Sprintf("%s/%d", filmsPath, id), nil, nil)
}

// createdRef picks the id out of whatever a create call answered with.
type createdRef struct {
	ID int64
}

func (r *createdRef) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		// Some creates answer with a bare id or a message string.
		if n, ok := parseInt(b); ok {
			r.ID = n
		}
		return nil
	}
	r.ID = f.int64("id", "Film_id", "Poster_id", "Season_id", "Episode_id", "insertId")
	return nil
}
