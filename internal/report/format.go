package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Money renders an amount in dong with vi-VN grouping: "1.234.567 đ".
func Money(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return humanize.FormatInteger("#.###,", int(math.Round(amount))) + " đ"
}

// Count groups a counter the same way, without the currency.
func Count(n float64) string {
	return humanize.FormatInteger("#.###,", int(math.Round(n)))
}

// Duration renders watch time as "3h 25p", or "25p" under an hour.
func Duration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	s := int64(seconds)
	hours := s / 3600
	minutes := (s % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dp", hours, minutes)
	}
	return fmt.Sprintf("%dp", minutes)
}

// Rating renders an average rating with one decimal, "-" when unrated.
func Rating(avg *float64) string {
	if avg == nil || *avg == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", *avg)
}

// StatusBadge picks the badge class for a film status text.
func StatusBadge(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "đang"):
		return "badge-success"
	case strings.Contains(s, "sắp"):
		return "badge-warning"
	default:
		return "badge-secondary"
	}
}
