package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"vodadmin/internal/api"
	"vodadmin/internal/auth"
	"vodadmin/internal/forms"
)

// Alert texts shared by every page.
const (
	msgSaveFailed   = "Lưu không thành công"
	msgDeleteFailed = "Xóa không thành công"
	msgSaved        = "Lưu thành công"
	msgDeleted      = "Xóa thành công"
	msgLoadFailed   = "Không tải được danh sách "
)

// client is the backend client authenticated as the request's admin.
func (s *Server) client(r *http.Request) *api.Client {
	return s.api.WithToken(auth.SessionFromContext(r.Context()))
}

// abort logs a failed backend call. When the backend rejected the token it
// also drops the session, sends the browser to the login page and reports
// true: the response is written and the handler must stop.
func (s *Server) abort(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		s.log.Warn().Err(err).Str("op", op).Msg("backend rejected session token")
		s.auth.ForceLogout(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	ev := s.log.Error().Err(err).Str("op", op)
	if id := chi.URLParam(r, "id"); id != "" {
		ev = ev.Str("id", id)
	}
	ev.Msg("backend call failed")
	return false
}

// finish ends a form post: on success it flashes okMsg, on failure the
// reason, and redirects to back either way.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, op string, err error, failMsg, okMsg, back string) {
	switch {
	case forms.Message(err) != "":
		setFlash(w, "danger", forms.Message(err))
	case err != nil:
		if s.abort(w, r, op, err) {
			return
		}
		setFlash(w, "danger", failReason(failMsg, err))
	case okMsg != "":
		setFlash(w, "success", okMsg)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func failReason(msg string, err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return msg + ": máy chủ tạm thời không phản hồi"
	}
	if m := api.BackendMessage(err); m != "" {
		return msg + ": " + m
	}
	return msg
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func formID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	return id
}

// backTo is the local path named by the "back" field or query parameter,
// or fallback. Anything that could leave the site is ignored.
func backTo(r *http.Request, fallback string) string {
	b := strings.TrimSpace(r.FormValue("back"))
	if b == "" || !strings.HasPrefix(b, "/") || strings.HasPrefix(b, "//") || strings.ContainsAny(b, "\\\r\n") {
		return fallback
	}
	return b
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// confirmPage is the body of every delete confirmation.
type confirmPage struct {
	Message string
	Action  string
	Back    string
}

func (s *Server) renderConfirm(w http.ResponseWriter, r *http.Request, title, message, action, back string) {
	s.render(w, r, "confirm", view{
		Title: title,
		Data:  confirmPage{Message: message, Action: action, Back: back},
	})
}

// handleHealth reports liveness plus the backend breaker state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.api.BreakerState()
	status := "ok"
	if state == "open" {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"backend": state,
	})
}
