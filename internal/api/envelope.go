package api

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// envelope is the wrapper some endpoints use. Others answer with the bare
// payload; decodeData accepts both.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeData(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		if f, err := decodeFields(trimmed); err == nil {
			if data, ok := f["data"]; ok {
				if isNull(data) {
					return nil
				}
				return json.Unmarshal(data, out)
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

func backendMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(raw), &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || string(t) == "null"
}

// Amount decodes money and counters that arrive either as JSON numbers or
// as numeric strings (SQL DECIMAL columns).
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// fields lets a decoder pick the first of several spellings the backend
// uses for the same column (Film_id vs id, Genre_name vs name).
type fields map[string]json.RawMessage

func decodeFields(b []byte) (fields, error) {
	f := fields{}
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f fields) raw(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func (f fields) has(keys ...string) bool {
	_, ok := f.raw(keys...)
	return ok
}

func (f fields) str(keys ...string) string {
	v, ok := f.raw(keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

func (f fields) int64(keys ...string) int64 {
	v, ok := f.raw(keys...)
	if !ok {
		return 0
	}
	n, _ := parseInt(v)
	return n
}

func (f fields) int(keys ...string) int {
	return int(f.int64(keys...))
}

func (f fields) boolean(keys ...string) (bool, bool) {
	v, ok := f.raw(keys...)
	if !ok {
		return false, false
	}
	switch strings.Trim(strings.ToLower(strings.TrimSpace(string(v))), `"`) {
	case "true", "1":
		return true, true
	case "false", "0", "":
		return false, true
	}
	return false, false
}

func (f fields) ints(keys ...string) []int64 {
	v, ok := f.raw(keys...)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		if n, ok := parseInt(it); ok {
			out = append(out, n)
		}
	}
	return out
}

func parseInt(v json.RawMessage) (int64, bool) {
	s := strings.Trim(strings.TrimSpace(string(v)), `"`)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
