package helpers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates in queries and bodies.
const DateLayout = time.DateOnly

// ParseDate parses an optional YYYY-MM-DD date. An empty string yields nil.
func ParseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return &t, nil
}

// QueryDate reads an optional date from the query string.
func QueryDate(r *http.Request, key string) (*time.Time, error) {
	return ParseDate(key, r.URL.Query().Get(key))
}

// QueryString returns a trimmed query parameter.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// OptionalString turns a blank string into nil.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
