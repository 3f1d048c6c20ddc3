package controllers

import (
	"net/http"
	"strings"
	"time"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// parseAmount converts a decimal amount field to cents. A blank optional field is zero.
func parseAmount(field, s string, required bool) (int64, []string) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return 0, []string{field + " is required"}
		}
		return 0, nil
	}
	cents, err := domain.ParseAmount(s)
	if err != nil {
		return 0, []string{field + " must be a positive amount such as 12.34"}
	}
	return cents, nil
}

// parsePaidAmount is parseAmount for an optional amount where zero is allowed.
func parsePaidAmount(field, s string) (int64, []string) {
	if isZeroAmount(s) {
		return 0, nil
	}
	return parseAmount(field, s, false)
}

func isZeroAmount(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && strings.Trim(s, "0.,") == "" && strings.ContainsRune(s, '0')
}

func parseDate(field, s string) (*time.Time, []string) {
	t, err := helpers.ParseDate(field, s)
	if err != nil {
		return nil, []string{err.Error()}
	}
	return t, nil
}

// queryDates reads the from/to query parameters shared by filtered lists and the dashboard.
func queryDates(r *http.Request) (from, to *time.Time, problems []string) {
	from, err := helpers.QueryDate(r, "from")
	if err != nil {
		problems = append(problems, err.Error())
	}
	to, err = helpers.QueryDate(r, "to")
	if err != nil {
		problems = append(problems, err.Error())
	}
	return from, to, problems
}
