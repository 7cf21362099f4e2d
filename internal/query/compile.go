package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sqlq/internal/value"
)

// Statement is compiled SQL: text with "?" placeholders plus the values
// to bind, in placeholder order. Hand both to the database driver; never
// splice Args into SQL.
type Statement struct {
	SQL  string
	Args []any
}

// Equal reports whether two statements have identical text and
// element-wise equal bound values.
func (s Statement) Equal(other Statement) bool {
	return s.SQL == other.SQL && value.EqualList(s.Args, other.Args)
}

// String returns the statement text followed by its bound values, for
// debugging. Values are quoted, never interpolated into the text.
func (s Statement) String() string {
	return fmt.Sprintf("%s -- args: %s", s.SQL, FormatArgs(s.Args))
}

// FormatArgs renders bound values as a bracketed list: strings and times
// quoted, byte slices as 0x-prefixed hex, nil as NULL.
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatArg(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// rule writes the verb clause of one kind and returns args extended with
// the values it bound.
type rule func(q *Query, b *strings.Builder, args []any) []any

// rules holds exactly one compile rule per kind.
var rules = map[Kind]rule{
	Select: func(q *Query, b *strings.Builder, args []any) []any {
		b.WriteString("SELECT * FROM ")
		b.WriteString(q.table)
		return args
	},
	Delete: func(q *Query, b *strings.Builder, args []any) []any {
		b.WriteString("DELETE FROM ")
		b.WriteString(q.table)
		return args
	},
	Insert: func(q *Query, b *strings.Builder, args []any) []any {
		b.WriteString("INSERT INTO ")
		b.WriteString(q.table)
		return appendAssignments(q, b, args)
	},
	Update: func(q *Query, b *strings.Builder, args []any) []any {
		b.WriteString("UPDATE ")
		b.WriteString(q.table)
		return appendAssignments(q, b, args)
	},
	Replace: func(q *Query, b *strings.Builder, args []any) []any {
		b.WriteString("REPLACE ")
		b.WriteString(q.table)
		return appendAssignments(q, b, args)
	},
}

// init refuses to start with a declared kind that has no compile rule.
func init() {
	if err := checkRules(); err != nil {
		panic(err)
	}
}

func checkRules() error {
	for _, k := range Kinds() {
		if _, ok := rules[k]; !ok {
			return &InternalError{Kind: k, Message: "no compile rule"}
		}
	}
	return nil
}

// appendAssignments writes " SET c1 = ?, c2 = ?" in stored order.
func appendAssignments(q *Query, b *strings.Builder, args []any) []any {
	b.WriteString(" SET ")
	for i, a := range q.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Column)
		b.WriteString(" = ?")
		args = append(args, a.Value)
	}
	return args
}

// Compile returns the compiled statement. The first call computes it; later
// calls return the cached text and a fresh copy of the args.
//
// Compile panics with *InternalError if the query's kind has no compile
// rule. Constructors only accept declared kinds and init checks every
// declared kind, so this is unreachable unless an invariant is broken.
func (q *Query) Compile() Statement {
	q.once.Do(func() {
		q.stmt = compile(q)
	})
	return Statement{SQL: q.stmt.SQL, Args: value.Clone(q.stmt.Args)}
}

// SQL returns the compiled statement text.
func (q *Query) SQL() string {
	return q.Compile().SQL
}

// Args returns the compiled bound values.
func (q *Query) Args() []any {
	return q.Compile().Args
}

func compile(q *Query) Statement {
	r, ok := rules[q.kind]
	if !ok {
		panic(&InternalError{Kind: q.kind, Message: "no compile rule"})
	}

	var b strings.Builder
	args := make([]any, 0, len(q.values))
	args = r(q, &b, args)

	if !q.where.IsEmpty() {
		var cond string
		cond, args = q.where.Render(args)
		b.WriteString(" WHERE ")
		b.WriteString(cond)
	}

	if q.hasLimit {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatUint(q.limit, 10))
	}

	return Statement{SQL: b.String(), Args: args}
}
