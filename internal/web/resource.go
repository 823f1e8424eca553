package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"vodadmin/internal/catalog"
)

// resource is one flat CRUD screen: a table of records, a create/edit form
// and a delete confirmation. Accounts, actors and the lookup tables all
// share it.
type resource struct {
	Path    string
	Title   string
	Noun    string
	Search  bool
	Columns []string
	Fields  []field
	// Kind names the lookup cache to drop after a change, if any.
	Kind catalog.Kind

	list   func(ctx context.Context, s *Server, r *http.Request, q string) ([]row, error)
	create func(ctx context.Context, s *Server, r *http.Request, v url.Values) error
	update func(ctx context.Context, s *Server, r *http.Request, id int64, v url.Values) error
	remove func(ctx context.Context, s *Server, r *http.Request, id int64) error
}

type field struct {
	Name        string
	Label       string
	Type        string
	Options     []option
	Placeholder string
	// CreateOnly fields are left empty when editing.
	CreateOnly bool
}

type option struct {
	Value string
	Label string
}

type row struct {
	ID     int64
	Label  string
	Cells  []string
	Values map[string]string
	Links  []link
}

type link struct {
	Href string
	Text string
}

type resourcePage struct {
	Res     *resource
	Query   string
	Rows    []row
	Editing *row
	Action  string
	Values  map[string]string
}

func (res *resource) base() string { return "/" + res.Path }

func (s *Server) mountResource(r chi.Router, res *resource) {
	r.Get(res.base(), s.resourceList(res))
	r.Post(res.base(), s.resourceCreate(res))
	r.Post(res.base()+"/{id}", s.resourceUpdate(res))
	r.Get(res.base()+"/{id}/delete", s.resourceDeleteConfirm(res))
	r.Post(res.base()+"/{id}/delete", s.resourceDelete(res))
}

func (s *Server) resourceList(res *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := ""
		if res.Search {
			q = strings.TrimSpace(r.URL.Query().Get("q"))
		}
		v := view{Title: res.Title, Nav: res.Path}
		page := resourcePage{Res: res, Query: q, Action: res.base(), Values: map[string]string{}}

		rows, err := res.list(r.Context(), s, r, q)
		if err != nil {
			if s.abort(w, r, res.Path+".list", err) {
				return
			}
			v.danger(msgLoadFailed + res.Noun)
		}
		page.Rows = rows

		if editID, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); err == nil {
			for i := range rows {
				if rows[i].ID == editID {
					page.Editing = &rows[i]
					page.Action = fmt.Sprintf("%s/%d", res.base(), editID)
					page.Values = rows[i].Values
					break
				}
			}
		}
		v.Data = page
		s.render(w, r, "resource", v)
	}
}

func (s *Server) resourceCreate(res *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		err := res.create(r.Context(), s, r, r.PostForm)
		if err == nil && res.Kind != "" {
			s.lookups.Invalidate(res.Kind)
		}
		s.finish(w, r, res.Path+".create", err, msgSaveFailed, msgSaved, res.base())
	}
}

func (s *Server) resourceUpdate(res *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		err := res.update(r.Context(), s, r, id, r.PostForm)
		if err == nil && res.Kind != "" {
			s.lookups.Invalidate(res.Kind)
		}
		back := res.base()
		if err != nil {
			back = fmt.Sprintf("%s?edit=%d", res.base(), id)
		}
		s.finish(w, r, res.Path+".update", err, msgSaveFailed, msgSaved, back)
	}
}

func (s *Server) resourceDeleteConfirm(res *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		label := fmt.Sprintf("#%d", id)
		if rows, err := res.list(r.Context(), s, r, ""); err == nil {
			for _, row := range rows {
				if row.ID == id && row.Label != "" {
					label = row.Label
				}
			}
		} else if s.abort(w, r, res.Path+".list", err) {
			return
		}
		s.renderConfirm(w, r, res.Title,
			fmt.Sprintf("Bạn có chắc muốn xóa %s \"%s\"?", res.Noun, label),
			fmt.Sprintf("%s/%d/delete", res.base(), id), res.base())
	}
}

// resourceDelete only calls the backend when the confirmation form was
// submitted; any other post goes straight back to the list.
func (s *Server) resourceDelete(res *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if !confirmed(r) {
			http.Redirect(w, r, res.base(), http.StatusSeeOther)
			return
		}
		err := res.remove(r.Context(), s, r, id)
		if err == nil && res.Kind != "" {
			s.lookups.Invalidate(res.Kind)
		}
		s.finish(w, r, res.Path+".delete", err, msgDeleteFailed, msgDeleted, res.base())
	}
}
