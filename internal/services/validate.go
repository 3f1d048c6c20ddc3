package services

import (
	"regexp"
	"strings"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// accountProblems checks the fields shared by sign-up and admin-created accounts.
func accountProblems(email, password, name string) []string {
	var problems []string
	if !emailRegexp.MatchString(email) {
		problems = append(problems, "invalid email format")
	}
	if len(password) < minPasswordLen {
		problems = append(problems, "password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is required")
	}
	return problems
}
