package web

import (
	"errors"
	"net/http"

	"vodadmin/internal/auth"
)

type loginPage struct {
	Email string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, err := s.sessions.Load(r); err == nil && auth.IsAdminRole(sess.Role) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login", view{Title: "Đăng nhập", Data: loginPage{}})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	_, err := s.auth.Login(r.Context(), w, email, r.PostFormValue("password"))
	if err != nil {
		v := view{Title: "Đăng nhập", Data: loginPage{Email: email}}
		var le *auth.LoginError
		if errors.As(err, &le) {
			v.danger(le.Message)
		} else {
			v.danger(auth.MsgLoginFailed)
		}
		s.renderStatus(w, r, http.StatusUnauthorized, "login", v)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLoginLimited(w http.ResponseWriter, r *http.Request) {
	s.log.Warn().Str("ip", r.RemoteAddr).Msg("login rate limited")
	v := view{Title: "Đăng nhập", Data: loginPage{}}
	v.danger("Bạn đã thử đăng nhập quá nhiều lần, vui lòng thử lại sau")
	s.renderStatus(w, r, http.StatusTooManyRequests, "login", v)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
