// Package report formats the statistics pages: the period filter, money
// and watch-time formatting, and film table paging.
package report

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultDays is the period used when the admin picked nothing.
const DefaultDays = 30

// Filter is the period picked on the stats page. Range is a quick-pick
// chip ("7", "30", ...) and wins over a month, which wins over a date
// range.
type Filter struct {
	Range string
	Month string
	Year  string
	From  string
	To    string
}

func FilterFrom(values url.Values) Filter {
	get := func(k string) string { return strings.TrimSpace(values.Get(k)) }
	return Filter{
		Range: get("range"),
		Month: get("month"),
		Year:  get("year"),
		From:  get("from"),
		To:    get("to"),
	}
}

// Params are the query parameters the report endpoints take.
func (f Filter) Params() url.Values {
	q := url.Values{}
	switch {
	case f.Range != "":
		q.Set("lastDays", f.Range)
	case f.Month != "" && f.Year != "":
		q.Set("month", f.Month)
		q.Set("year", f.Year)
	case f.From != "" && f.To != "":
		q.Set("from", f.From)
		q.Set("to", f.To)
	default:
		q.Set("lastDays", strconv.Itoa(DefaultDays))
	}
	return q
}

func (f Filter) Label() string {
	switch {
	case f.Range != "":
		return fmt.Sprintf("%s ngày gần nhất", f.Range)
	case f.Month != "" && f.Year != "":
		return fmt.Sprintf("Tháng %s/%s", f.Month, f.Year)
	case f.From != "" && f.To != "":
		return fmt.Sprintf("Từ %s đến %s", f.From, f.To)
	default:
		return fmt.Sprintf("%d ngày gần nhất (mặc định)", DefaultDays)
	}
}

// Query is what the film-stats table sends: the period plus paging and
// sort order. sortBy defaults to views and order to desc.
func (f Filter) Query(page int, sortBy, order string) url.Values {
	q := f.Params()
	if page < 1 {
		page = 1
	}
	if sortBy == "" {
		sortBy = "views"
	}
	if order != "asc" {
		order = "desc"
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(PageSize))
	q.Set("sortBy", sortBy)
	q.Set("order", order)
	return q
}

// YearOptions lists the years offered in the month filter: two back and
// one ahead of now.
func YearOptions(now time.Time) []int {
	y := now.Year()
	out := make([]int, 0, 4)
	for i := y - 2; i <= y+1; i++ {
		out = append(out, i)
	}
	return out
}
