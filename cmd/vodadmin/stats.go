package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"vodadmin/internal/api"
	"vodadmin/internal/catalog"
	"vodadmin/internal/report"
)

func newStatsCommand(cc *commandContext) *cobra.Command {
	var (
		token  string
		filter report.Filter
		page   int
		sortBy string
		order  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the report overview and the film statistics table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := cc.client().WithToken(api.StaticToken(resolveToken(token)))
			out := cmd.OutOrStdout()

			overview, err := c.ReportOverview(ctx, filter.Params())
			if err != nil {
				return fmt.Errorf("report overview: %w", err)
			}
			label := filter.Label()
			if overview.Filter.Label != "" {
				label = overview.Filter.Label
			}
			writeOverview(out, overview, label)

			films, err := c.ReportFilms(ctx, filter.Query(page, sortBy, order))
			if err != nil {
				return fmt.Errorf("report films: %w", err)
			}
			writeFilmStats(out, films)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.Range, "range", "", "Last N days (7, 30, 90, 365)")
	f.StringVar(&filter.Month, "month", "", "Month 1-12, with --year")
	f.StringVar(&filter.Year, "year", "", "Year, with --month")
	f.StringVar(&filter.From, "from", "", "Start date YYYY-MM-DD, with --to")
	f.StringVar(&filter.To, "to", "", "End date YYYY-MM-DD, with --from")
	f.IntVar(&page, "page", 1, "Film table page")
	f.StringVar(&sortBy, "sort", "views", "Sort column: views, total_watch_seconds, favorites, comments, avg_rating")
	f.StringVar(&order, "order", "desc", "Sort order: asc or desc")
	tokenFlag(cmd, &token)
	return cmd
}

func writeOverview(w io.Writer, o api.ReportOverview, label string) {
	c := o.Counters
	rows := [][]string{
		{"Doanh thu", report.Money(float64(c.Revenue.TotalAmount))},
		{"Giao dịch", report.Count(float64(c.Revenue.TotalPayments))},
		{"Premium hiện tại", report.Count(float64(c.Revenue.CurrentPremiumAccounts))},
		{"Premium mới", report.Count(float64(c.Revenue.NewPremiumAccounts))},
		{"Lượt xem", report.Count(float64(c.Watching.Views))},
		{"Thời gian xem", report.Duration(float64(c.Watching.TotalWatchSeconds))},
		{"Bình luận", report.Count(float64(c.Comments.Total))},
		{"Bình luận mới", report.Count(float64(c.Comments.New))},
	}
	tbl := sheet{
		columns: []column{textCol("Chỉ số"), numCol("Giá trị")},
		rows:    rows,
		caption: "Khoảng thời gian: " + label,
	}
	fmt.Fprintln(w, tbl.render())
}

func writeFilmStats(w io.Writer, p api.FilmStatsPage) {
	pager := report.NewPager(p.Page, p.Total, len(p.Rows))
	rows := make([][]string, 0, len(p.Rows))
	for i, f := range p.Rows {
		var avg *float64
		if f.AvgRating != nil {
			v := float64(*f.AvgRating)
			avg = &v
		}
		year := ""
		if f.ReleaseYear > 0 {
			year = strconv.Itoa(int(f.ReleaseYear))
		}
		rows = append(rows, []string{
			strconv.Itoa(pager.Ordinal(i)),
			f.Name,
			catalog.FilmKind(f.IsSeries),
			year,
			report.Count(float64(f.Views)),
			report.Duration(float64(f.TotalWatchSeconds)),
			report.Count(float64(f.Favorites)),
			report.Count(float64(f.Comments)),
			fmt.Sprintf("%s (%s)", report.Rating(avg), report.Count(float64(f.RatingCount))),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, pager.Summary())
		return
	}
	tbl := sheet{
		columns: []column{
			numCol("#"), textCol("Phim"), textCol("Loại"), numCol("Năm"), numCol("Lượt xem"),
			numCol("Thời gian xem"), numCol("Yêu thích"), numCol("Bình luận"), numCol("Đánh giá"),
		},
		rows:    rows,
		caption: pager.Summary(),
	}
	fmt.Fprintln(w, tbl.render())
}
