package report

import "fmt"

const PageSize = 10

// Pager describes one page of the film-stats table.
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	Rows       int
}

func NewPager(page, total, rows int) Pager {
	if page < 1 {
		page = 1
	}
	return Pager{Page: page, TotalPages: TotalPages(total), Total: total, Rows: rows}
}

// TotalPages is never below one so an empty table still reads "1 / 1".
func TotalPages(total int) int {
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Ordinal is the row number shown for index idx on this page.
func (p Pager) Ordinal(idx int) int {
	return (p.Page-1)*PageSize + idx + 1
}

func (p Pager) HasPrev() bool { return p.Page > 1 }
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }
func (p Pager) Prev() int     { return p.Page - 1 }
func (p Pager) Next() int     { return p.Page + 1 }

func (p Pager) Summary() string {
	return fmt.Sprintf("Trang %d / %d – %d / %d phim", p.Page, p.TotalPages, p.Rows, p.Total)
}
