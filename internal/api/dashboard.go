package api

import (
	"context"
	"net/url"
	"strconv"
)

type DashboardStats struct {
	TotalFilms       Amount `json:"total_films"`
	TotalAccounts    Amount `json:"total_accounts"`
	TotalProfiles    Amount `json:"total_profiles"`
	PremiumActive    Amount `json:"premium_active"`
	RevenueThisMonth Amount `json:"revenue_this_month"`
	Comments7Days    Amount `json:"comments_7_days"`
	Views7Days       Amount `json:"views_7_days"`
}

type TopFilm struct {
	Name  string `json:"Film_name"`
	Views Amount `json:"view_count"`
}

type GenreShare struct {
	Name  string `json:"Genre_name"`
	Films Amount `json:"film_count"`
}

type CountryShare struct {
	Name  string `json:"Country_name"`
	Films Amount `json:"film_count"`
}

type RevenuePoint struct {
	Day    string `json:"day"`
	Amount Amount `json:"total_amount"`
}

const dashboardPath = "/api/dashboard"

func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	if err := c.get(ctx, "dashboard.stats", dashboardPath+"/stats", nil, &out); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

// TopFilms ranks films by kind ("views") and keeps the first limit.
func (c *Client) TopFilms(ctx context.Context, kind string, limit int) ([]TopFilm, error) {
	var out []TopFilm
	q := url.Values{"type": {kind}, "limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "dashboard.top_films", dashboardPath+"/top-films", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenreDistribution(ctx context.Context) ([]GenreShare, error) {
	var out []GenreShare
	if err := c.get(ctx, "dashboard.genres", dashboardPath+"/genre-distribution", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CountryDistribution(ctx context.Context) ([]CountryShare, error) {
	var out []CountryShare
	if err := c.get(ctx, "dashboard.countries", dashboardPath+"/country-distribution", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Revenue(ctx context.Context, days int) ([]RevenuePoint, error) {
	var out []RevenuePoint
	q := url.Values{"days": {strconv.Itoa(days)}}
	if err := c.get(ctx, "dashboard.revenue", dashboardPath+"/revenue", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
