package catalog

import (
	"context"
	"time"

	"vodadmin/internal/api"
)

// Source is the backend surface the lookup lists come from.
type Source interface {
	ListGenres(ctx context.Context) ([]api.Genre, error)
	ListCountries(ctx context.Context) ([]api.Country, error)
	ListActors(ctx context.Context) ([]api.Actor, error)
	ListPosterTypes(ctx context.Context) ([]api.PosterType, error)
	ListResolutions(ctx context.Context) ([]api.Resolution, error)
}

type Kind string

const (
	KindGenres      Kind = "genres"
	KindCountries   Kind = "countries"
	KindActors      Kind = "actors"
	KindPosterTypes Kind = "postertypes"
	KindResolutions Kind = "resolutions"
)

const allKey = "all"

// Lookups caches the option lists behind the film, poster and source
// forms. The lists are the same for every admin, so one cache serves all
// sessions; the caller supplies its own per-session Source on a miss.
type Lookups struct {
	ttl         time.Duration
	now         func() time.Time
	genres      *Cache[api.Genre]
	countries   *Cache[api.Country]
	actors      *Cache[api.Actor]
	posterTypes *Cache[api.PosterType]
	resolutions *Cache[api.Resolution]
}

func NewLookups(ttl time.Duration) *Lookups {
	return &Lookups{
		ttl:         ttl,
		now:         time.Now,
		genres:      NewCache[api.Genre](),
		countries:   NewCache[api.Country](),
		actors:      NewCache[api.Actor](),
		posterTypes: NewCache[api.PosterType](),
		resolutions: NewCache[api.Resolution](),
	}
}

func cached[T any](c *Cache[T], ttl time.Duration, now time.Time, load func() ([]T, error)) ([]T, error) {
	if items, ok := c.Get(allKey, now); ok {
		return items, nil
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(allKey, items, ttl, now)
	return items, nil
}

func (l *Lookups) Genres(ctx context.Context, src Source) ([]api.Genre, error) {
	return cached(l.genres, l.ttl, l.now(), func() ([]api.Genre, error) { return src.ListGenres(ctx) })
}

func (l *Lookups) Countries(ctx context.Context, src Source) ([]api.Country, error) {
	return cached(l.countries, l.ttl, l.now(), func() ([]api.Country, error) { return src.ListCountries(ctx) })
}

func (l *Lookups) Actors(ctx context.Context, src Source) ([]api.Actor, error) {
	return cached(l.actors, l.ttl, l.now(), func() ([]api.Actor, error) { return src.ListActors(ctx) })
}

func (l *Lookups) PosterTypes(ctx context.Context, src Source) ([]api.PosterType, error) {
	return cached(l.posterTypes, l.ttl, l.now(), func() ([]api.PosterType, error) { return src.ListPosterTypes(ctx) })
}

func (l *Lookups) Resolutions(ctx context.Context, src Source) ([]api.Resolution, error) {
	return cached(l.resolutions, l.ttl, l.now(), func() ([]api.Resolution, error) { return src.ListResolutions(ctx) })
}

// Invalidate drops the cached list of kind after a create, update or
// delete of that entity.
func (l *Lookups) Invalidate(kind Kind) {
	switch kind {
	case KindGenres:
		l.genres.Delete(allKey)
	case KindCountries:
		l.countries.Delete(allKey)
	case KindActors:
		l.actors.Delete(allKey)
	case KindPosterTypes:
		l.posterTypes.Delete(allKey)
	case KindResolutions:
		l.resolutions.Delete(allKey)
	}
}
