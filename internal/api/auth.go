package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrLoginRejected carries the backend's reason in LoginError.
var ErrLoginRejected = errors.New("login rejected")

// LoginError is a refused login. Answered is set when the backend replied
// 2xx but without success or a token, as opposed to an error status.
type LoginError struct {
	Reason   string
	Answered bool
}

func (e *LoginError) Error() string { return "login rejected: " + e.Reason }

func (e *LoginError) Unwrap() error { return ErrLoginRejected }

// LoginResult is the backend's answer to a successful login. User is kept
// loosely typed because the role key has changed spelling over time.
type LoginResult struct {
	Token string
	User  map[string]any
}

type loginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    map[string]any `json:"user"`
	Error   string         `json:"error"`
	Message string         `json:"message"`
}

// Login exchanges credentials for a bearer token. It needs no token
// itself, so it is safe to call on the shared client.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.call(ctx, "auth.login", http.MethodPost, "/api/auth/login", nil, body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status < 500 {
			return LoginResult{}, &LoginError{Reason: se.Message}
		}
		return LoginResult{}, err
	}
	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LoginResult{}, &LoginError{Answered: true}
	}
	if !resp.Success || resp.Token == "" {
		reason := resp.Error
		if reason == "" {
			reason = resp.Message
		}
		return LoginResult{}, &LoginError{Reason: reason, Answered: true}
	}
	if resp.User == nil {
		resp.User = map[string]any{}
	}
	return LoginResult{Token: resp.Token, User: resp.User}, nil
}
