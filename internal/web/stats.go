package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"vodadmin/internal/api"
	"vodadmin/internal/report"
)

var (
	statsRanges = []string{"7", "30", "90", "365"}
	statsSorts  = []option{
		{Value: "views", Label: "Lượt xem"},
		{Value: "total_watch_seconds", Label: "Thời gian xem"},
		{Value: "favorites", Label: "Yêu thích"},
		{Value: "comments", Label: "Bình luận"},
		{Value: "avg_rating", Label: "Đánh giá"},
	}
)

type statsPage struct {
	Filter   report.Filter
	Label    string
	Ranges   []string
	Months   []int
	Years    []int
	Sorts    []option
	SortBy   string
	Order    string
	Overview api.ReportOverview
	Films    []api.FilmStat
	Pager    report.Pager
}

// PageLink is the stats URL for page n keeping the period and sort.
func (p statsPage) PageLink(n int) string {
	q := filterQuery(p.Filter)
	q.Set("page", strconv.Itoa(n))
	q.Set("sortBy", p.SortBy)
	q.Set("order", p.Order)
	return "/stats?" + q.Encode()
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := s.client(r)
	query := r.URL.Query()

	// A first visit opens on the 7-day chip.
	filter := report.Filter{Range: "7"}
	if len(query) > 0 {
		filter = report.FilterFrom(query)
	}
	pageNo, _ := strconv.Atoi(query.Get("page"))
	if pageNo < 1 {
		pageNo = 1
	}
	sortBy := query.Get("sortBy")
	if sortBy == "" {
		sortBy = "views"
	}
	order := "desc"
	if query.Get("order") == "asc" {
		order = "asc"
	}

	v := view{Title: "Thống kê", Nav: "stats"}
	page := statsPage{
		Filter: filter,
		Label:  filter.Label(),
		Ranges: statsRanges,
		Months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Years:  report.YearOptions(s.now()),
		Sorts:  statsSorts,
		SortBy: sortBy,
		Order:  order,
		Pager:  report.NewPager(pageNo, 0, 0),
	}

	overview, err := c.ReportOverview(ctx, filter.Params())
	switch {
	case errors.Is(err, api.ErrReportFailed):
		v.danger("Không lấy được dữ liệu tổng quan.")
	case err != nil:
		if s.abort(w, r, "reports.overview", err) {
			return
		}
		v.danger("Lỗi khi tải dữ liệu tổng quan.")
	default:
		page.Overview = overview
		if overview.Filter.Label != "" {
			page.Label = overview.Filter.Label
		}
	}

	films, err := c.ReportFilms(ctx, filter.Query(pageNo, sortBy, order))
	switch {
	case errors.Is(err, api.ErrReportFailed):
		v.danger("Không lấy được thống kê phim.")
	case err != nil:
		if s.abort(w, r, "reports.films", err) {
			return
		}
		v.danger("Lỗi khi tải thống kê phim.")
	default:
		page.Films = films.Rows
		page.Pager = report.NewPager(films.Page, films.Total, len(films.Rows))
	}

	v.Data = page
	s.render(w, r, "stats", v)
}

// filterQuery is the filter as the stats page's own query string.
func filterQuery(f report.Filter) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("range", f.Range)
	set("month", f.Month)
	set("year", f.Year)
	set("from", f.From)
	set("to", f.To)
	return q
}
