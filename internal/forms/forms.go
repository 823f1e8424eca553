// Package forms turns submitted admin forms into backend payloads. Every
// builder validates first and reports the first problem as a
// *ValidationError carrying the message shown to the admin.
package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Message returns the admin-facing text of a validation error, or "".
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func v() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// check validates s and maps the first failing field to its message.
func check(s any, messages map[string]string) error {
	err := v().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := messages[fe.Field()]
	if !ok {
		msg = fe.Field() + " không hợp lệ"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// optString is nil for an empty field so it serializes as JSON null.
func optString(values url.Values, key string) *string {
	s := text(values, key)
	if s == "" {
		return nil
	}
	return &s
}

// optInt is nil for an empty or non-numeric field.
func optInt(values url.Values, key string) *int {
	n, err := strconv.Atoi(text(values, key))
	if err != nil {
		return nil
	}
	return &n
}

func optInt64(values url.Values, key string) *int64 {
	n, err := strconv.ParseInt(text(values, key), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func checked(values url.Values, key string) bool {
	switch strings.ToLower(text(values, key)) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

// ids collects every numeric value submitted under key, skipping blanks.
func ids(values url.Values, key string) []int64 {
	var out []int64
	for _, raw := range values[key] {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}
