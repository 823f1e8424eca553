package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vodadmin/internal/api"
	"vodadmin/internal/catalog"
)

// listing is one entity the list command can print.
type listing struct {
	columns []column
	rows    func(ctx context.Context, c *api.Client) ([][]string, error)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

var listings = map[string]listing{
	"films": {
		columns: []column{numCol("ID"), textCol("Tên phim"), numCol("Năm"), textCol("Loại"), textCol("Trạng thái")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			films, err := c.ListFilms(ctx)
			out := make([][]string, 0, len(films))
			for _, f := range films {
				year := ""
				if f.Year > 0 {
					year = strconv.Itoa(f.Year)
				}
				out = append(out, []string{itoa(f.ID), f.Name, year, catalog.FilmKind(f.IsSeries), f.Status})
			}
			return out, err
		},
	},
	"genres": {
		columns: []column{numCol("ID"), textCol("Thể loại")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListGenres(ctx)
			out := make([][]string, 0, len(items))
			for _, g := range items {
				out = append(out, []string{itoa(g.ID), g.Name})
			}
			return out, err
		},
	},
	"countries": {
		columns: []column{numCol("ID"), textCol("Quốc gia")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListCountries(ctx)
			out := make([][]string, 0, len(items))
			for _, it := range items {
				out = append(out, []string{itoa(it.ID), it.Name})
			}
			return out, err
		},
	},
	"actors": {
		columns: []column{numCol("ID"), textCol("Diễn viên"), textCol("Giới tính")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListActors(ctx)
			out := make([][]string, 0, len(items))
			for _, a := range items {
				out = append(out, []string{itoa(a.ID), a.Name, a.Gender})
			}
			return out, err
		},
	},
	"accounts": {
		columns: []column{numCol("ID"), textCol("Email"), textCol("Vai trò"), textCol("Premium")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListAccounts(ctx)
			out := make([][]string, 0, len(items))
			for _, a := range items {
				premium := "Không"
				if a.IsPremium {
					premium = "Có"
				}
				out = append(out, []string{itoa(a.ID), a.Email, a.Role, premium})
			}
			return out, err
		},
	},
	"profiles": {
		columns: []column{numCol("ID"), textCol("Tên hồ sơ"), textCol("Email"), numCol("Tài khoản")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListProfiles(ctx)
			out := make([][]string, 0, len(items))
			for _, p := range items {
				out = append(out, []string{itoa(p.ID), p.Name, p.Email, itoa(p.AccountID)})
			}
			return out, err
		},
	},
	"postertypes": {
		columns: []column{numCol("ID"), textCol("Loại poster")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListPosterTypes(ctx)
			out := make([][]string, 0, len(items))
			for _, t := range items {
				out = append(out, []string{itoa(t.ID), t.Name})
			}
			return out, err
		},
	},
	"resolutions": {
		columns: []column{numCol("ID"), textCol("Độ phân giải")},
		rows: func(ctx context.Context, c *api.Client) ([][]string, error) {
			items, err := c.ListResolutions(ctx)
			out := make([][]string, 0, len(items))
			for _, r := range items {
				out = append(out, []string{itoa(r.ID), r.Type})
			}
			return out, err
		},
	},
}

func listingNames() []string {
	names := make([]string, 0, len(listings))
	for name := range listings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newListCommand(cc *commandContext) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:       "list <entity>",
		Short:     "Print a catalog table",
		Long:      "Print a catalog table. Entities: " + strings.Join(listingNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: listingNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := listings[args[0]]
			if !ok {
				return fmt.Errorf("unknown entity %q (want one of %s)", args[0], strings.Join(listingNames(), ", "))
			}
			c := cc.client().WithToken(api.StaticToken(resolveToken(token)))
			rows, err := l.rows(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("list %s: %w", args[0], err)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Không có dữ liệu")
				return nil
			}
			tbl := sheet{columns: l.columns, rows: rows, caption: fmt.Sprintf("%d mục", len(rows))}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}
	tokenFlag(cmd, &token)
	return cmd
}
