// Package catalog holds the small pieces of catalog logic the pages share:
// episode numbering, season labels and the cached lookup lists used to fill
// form selects.
package catalog

import (
	"fmt"
	"strings"

	"vodadmin/internal/api"
)

// NextEpisodeNumber is one past the highest episode number in the season.
// Episodes the backend sent without a number count by their 1-based
// position. An empty season starts at 1.
func NextEpisodeNumber(episodes []api.Episode) int {
	highest := 0
	for i, ep := range episodes {
		n := ep.Number
		if n <= 0 {
			n = i + 1
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

// SeasonLabel is the season's name, or "Season N" when it has none.
func SeasonLabel(s api.Season) string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	if s.Number > 0 {
		return fmt.Sprintf("Season %d", s.Number)
	}
	return fmt.Sprintf("Season #%d", s.ID)
}

// EpisodeNumber is the number shown for the episode at index i.
func EpisodeNumber(ep api.Episode, i int) int {
	if ep.Number > 0 {
		return ep.Number
	}
	return i + 1
}

// FindSeason returns the season with the given id, falling back to the
// first one when id is 0 or unknown. ok is false for an empty list.
func FindSeason(seasons []api.Season, id int64) (api.Season, bool) {
	if len(seasons) == 0 {
		return api.Season{}, false
	}
	for _, s := range seasons {
		if s.ID == id {
			return s, true
		}
	}
	return seasons[0], true
}

func FilmKind(series bool) string {
	if series {
		return "Phim bộ"
	}
	return "Phim lẻ"
}
