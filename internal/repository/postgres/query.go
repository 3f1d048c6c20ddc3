package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// whereBuilder collects AND-ed conditions with numbered placeholders.
// Each clause is a format string whose %d (or %[1]d) is replaced by the argument's position.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *whereBuilder) addIf(ok bool, clause string, arg any) {
	if ok {
		w.add(clause, arg)
	}
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT and OFFSET placeholders and returns the clause with the full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
