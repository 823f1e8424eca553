package forms

import (
	"net/url"
	"strconv"
	"strings"

	"vodadmin/internal/api"
)

// GenreControl is the hidden marker the film form sends when it renders a
// genre picker. Browsers omit an untouched multi-select entirely, so the
// marker is what tells "no genres" apart from "not asked".
const GenreControl = "genre_ids_present"

func Film(values url.Values) (api.FilmPayload, error) {
	name, err := requiredName(values, "film_name", "Tên phim là bắt buộc")
	if err != nil {
		return api.FilmPayload{}, err
	}
	p := api.FilmPayload{
		Name:     name,
		IsSeries: checked(values, "is_series"),
		Info: api.FilmInfoPayload{
			OriginalName:   optString(values, "original_name"),
			Description:    optString(values, "description"),
			ReleaseYear:    optInt(values, "release_year"),
			Duration:       optInt(values, "duration"),
			CountryID:      optInt64(values, "country_id"),
			MaturityRating: optString(values, "maturity_rating"),
			FilmStatus:     optString(values, "film_status"),
			TrailerURL:     optString(values, "trailer_url"),
		},
		CastIDs: ids(values, "cast_ids"),
	}
	if values.Has(GenreControl) || values.Has("genre_ids") {
		genres := ids(values, "genre_ids")
		if genres == nil {
			genres = []int64{}
		}
		p.GenreIDs = &genres
	}
	return p, nil
}

func Season(values url.Values) (api.SeasonPayload, error) {
	name, err := requiredName(values, "name", "Vui lòng nhập tên mùa")
	return api.SeasonPayload{Name: name}, err
}

// Episode builds an episode body. next is used when the number field is
// empty; pass catalog.NextEpisodeNumber of the season's episodes.
func Episode(values url.Values, next int) (api.EpisodePayload, error) {
	title, err := requiredName(values, "title", "Vui lòng nhập tên tập")
	if err != nil {
		return api.EpisodePayload{}, err
	}
	p := api.EpisodePayload{Title: title, Number: next}
	if d := optInt(values, "duration"); d != nil && *d > 0 {
		p.Duration = d
	}
	if n := optInt(values, "number"); n != nil && *n > 0 {
		p.Number = *n
	}
	return p, nil
}

// Sources zips the parallel resolution_id / source_url fields of the
// sources form. Rows without a URL or a resolution are dropped.
func Sources(values url.Values) []api.SourcePayload {
	res := values["resolution_id"]
	urls := values["source_url"]
	out := []api.SourcePayload{}
	for i := 0; i < len(res) && i < len(urls); i++ {
		u := strings.TrimSpace(urls[i])
		if u == "" {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(res[i]), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, api.SourcePayload{ResolutionID: id, URL: u})
	}
	return out
}

type PosterOp int

const (
	PosterNoop PosterOp = iota
	PosterCreate
	PosterUpdate
	// PosterConfirmDelete asks the admin before an empty URL removes an
	// existing poster.
	PosterConfirmDelete
	PosterDelete
)

// PosterSave decides what saving one poster-type row means. existingID is
// the poster already stored for that type, 0 if none.
func PosterSave(existingID int64, rawURL string, confirmed bool) PosterOp {
	if strings.TrimSpace(rawURL) == "" {
		switch {
		case existingID == 0:
			return PosterNoop
		case confirmed:
			return PosterDelete
		default:
			return PosterConfirmDelete
		}
	}
	if existingID != 0 {
		return PosterUpdate
	}
	return PosterCreate
}

func Poster(filmID, typeID int64, rawURL string) api.PosterPayload {
	return api.PosterPayload{FilmID: filmID, TypeID: typeID, URL: strings.TrimSpace(rawURL)}
}
