package api

import (
	"context"
	"errors"
	"net/url"
)

// ErrReportFailed is returned when a report endpoint answers 200 with
// success=false.
var ErrReportFailed = errors.New("report unavailable")

type ReportOverview struct {
	Success  bool `json:"success"`
	Counters struct {
		Revenue struct {
			TotalAmount            Amount `json:"total_amount"`
			TotalPayments          Amount `json:"total_payments"`
			CurrentPremiumAccounts Amount `json:"current_premium_accounts"`
			NewPremiumAccounts     Amount `json:"new_premium_accounts"`
		} `json:"revenue"`
		Watching struct {
			Views             Amount `json:"views"`
			TotalWatchSeconds Amount `json:"total_watch_seconds"`
		} `json:"watching"`
		Comments struct {
			Total Amount `json:"total_comments"`
			New   Amount `json:"new_comments"`
		} `json:"comments"`
	} `json:"counters"`
	Charts struct {
		RevenueByDay []RevenuePoint `json:"revenueByDay"`
	} `json:"charts"`
	TopFilms []FilmStat `json:"topFilms"`
	Filter   struct {
		Label string `json:"label"`
	} `json:"filter"`
}

type FilmStat struct {
	Name              string  `json:"Film_name"`
	IsSeries          bool    `json:"is_series"`
	PremiumOnly       bool    `json:"is_premium_only"`
	AvgRating         *Amount `json:"avg_rating"`
	RatingCount       Amount  `json:"rating_count"`
	Country           string  `json:"Country_name"`
	Genres            string  `json:"genres"`
	ReleaseYear       Amount  `json:"Release_year"`
	Views             Amount  `json:"views"`
	TotalWatchSeconds Amount  `json:"total_watch_seconds"`
	Favorites         Amount  `json:"favorites"`
	Comments          Amount  `json:"comments"`
}

type FilmStatsPage struct {
	Success bool       `json:"success"`
	Page    int        `json:"page"`
	Total   int        `json:"total"`
	Rows    []FilmStat `json:"data"`
}

const reportsPath = "/api/reports"

// ReportOverview takes the filter as query parameters (see report.Filter).
func (c *Client) ReportOverview(ctx context.Context, filter url.Values) (ReportOverview, error) {
	var out ReportOverview
	if err := c.getRaw(ctx, "reports.overview", reportsPath+"/overview", filter, &out); err != nil {
		return ReportOverview{}, err
	}
	if !out.Success {
		return ReportOverview{}, ErrReportFailed
	}
	return out, nil
}

func (c *Client) ReportFilms(ctx context.Context, query url.Values) (FilmStatsPage, error) {
	var out FilmStatsPage
	if err := c.getRaw(ctx, "reports.films", reportsPath+"/films", query, &out); err != nil {
		return FilmStatsPage{}, err
	}
	if !out.Success {
		return FilmStatsPage{}, ErrReportFailed
	}
	if out.Page < 1 {
		out.Page = 1
	}
	return out, nil
}
