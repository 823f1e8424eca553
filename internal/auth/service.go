package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vodadmin/internal/api"
	"vodadmin/internal/metrics"
	"vodadmin/internal/session"
)

// Messages shown on the login page.
const (
	MsgMissingCredentials = "Vui lòng nhập email và mật khẩu"
	MsgLoginFailed        = "Đăng nhập thất bại"
	MsgBadCredentials     = "Sai email hoặc mật khẩu"
	MsgNotAdmin           = "Tài khoản không có quyền quản trị"
)

// LoginError is a login refusal with a message fit for the form.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// Backend is the part of the catalog API the login flow needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
}

type Service struct {
	backend  Backend
	sessions *session.Manager
	log      zerolog.Logger
}

func NewService(backend Backend, sessions *session.Manager, log zerolog.Logger) *Service {
	return &Service{backend: backend, sessions: sessions, log: log}
}

// Login checks the credentials with the backend and, for an admin, starts
// a session and sets its cookie on w. Refusals come back as *LoginError.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, &LoginError{Message: MsgMissingCredentials}
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		var le *api.LoginError
		if errors.As(err, &le) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			msg := le.Reason
			switch {
			case msg != "":
			case le.Answered:
				msg = MsgLoginFailed
			default:
				msg = MsgBadCredentials
			}
			return nil, &LoginError{Message: msg}
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("login call failed")
		return nil, &LoginError{Message: MsgLoginFailed}
	}

	info, isJWT := InspectToken(res.Token)
	role := RoleOf(res.User)
	if role == "" && isJWT {
		role = info.Role
	}
	if !IsAdminRole(role) {
		metrics.LoginAttempts.WithLabelValues("forbidden").Inc()
		s.log.Warn().Str("email", email).Str("role", role).Msg("non-admin login refused")
		return nil, &LoginError{Message: MsgNotAdmin}
	}

	userEmail := emailOf(res.User)
	if userEmail == "" {
		userEmail = email
	}
	sess := &session.Session{
		AccessToken: res.Token,
		Name:        DisplayName(res.User),
		Email:       userEmail,
		Role:        role,
		ExpiresAt:   info.ExpiresAt,
	}
	if !sess.ExpiresAt.IsZero() && !sess.ExpiresAt.After(time.Now()) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, &LoginError{Message: MsgLoginFailed}
	}
	if err := s.sessions.Start(ctx, w, sess); err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("start session")
		return nil, &LoginError{Message: MsgLoginFailed}
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	s.log.Info().Str("email", userEmail).Msg("admin signed in")
	return sess, nil
}

// Logout drops the request's session and its cookie.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(w, r); err != nil {
		s.log.Error().Err(err).Msg("delete session")
	}
}

// ForceLogout is Logout after the backend rejected the session's token.
func (s *Service) ForceLogout(w http.ResponseWriter, r *http.Request) {
	metrics.ForcedLogouts.Inc()
	s.Logout(w, r)
}
