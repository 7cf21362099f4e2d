// Package querysql adapts compiled statements to a driver's placeholder
// syntax.
//
// The compiler always emits "?" placeholders, which SQLite and MySQL accept
// as-is. PostgreSQL drivers expect numbered "$1, $2, ..." placeholders, so
// statements bound for them are rebound before execution. Bound values keep
// their order; only the text changes.
package querysql

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a placeholder syntax.
type Style int

const (
	// Question is "?" (SQLite, MySQL).
	Question Style = iota
	// Dollar is "$1, $2, ..." (PostgreSQL).
	Dollar
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case Question:
		return "question"
	case Dollar:
		return "dollar"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// StyleForDriver returns the placeholder style of a database/sql driver
// name. Unknown drivers default to Question.
func StyleForDriver(driver string) Style {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return Dollar
	default:
		return Question
	}
}

// Rebind rewrites the "?" placeholders of sql into style. Placeholders
// inside single-quoted, double-quoted or backquoted text are left alone.
func Rebind(style Style, sql string) string {
	if style == Question || !strings.Contains(sql, "?") {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			b.WriteByte(ch)
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
			b.WriteByte(ch)
		case ch == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Count returns the number of placeholders in a "?"-style statement,
// ignoring quoted text.
func Count(sql string) int {
	n := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '?':
			n++
		}
	}
	return n
}
