package query

import (
	"sync"

	"github.com/roach88/sqlq/internal/value"
	"github.com/roach88/sqlq/internal/where"
)

// Assignment sets one column in a mutating query.
type Assignment struct {
	Column string
	Value  any
}

// Set is shorthand for an Assignment.
func Set(column string, v any) Assignment {
	return Assignment{Column: column, Value: v}
}

// Query is an immutable description of one table operation.
// Construct it with NewMutation or NewFilter; the zero value is not usable.
// A Query must not be copied after first use.
type Query struct {
	kind     Kind
	table    string
	values   []Assignment
	where    *where.Tree
	limit    uint64
	hasLimit bool

	once sync.Once
	stmt Statement
}

// Option configures the optional parts of a Query.
type Option func(*options)

type options struct {
	where    *where.Tree
	limit    uint64
	hasLimit bool
}

// WithWhere filters the query by tree. A nil or empty tree means no WHERE
// clause.
func WithWhere(tree *where.Tree) Option {
	return func(o *options) {
		o.where = tree
	}
}

// WithLimit caps the number of affected or returned rows.
func WithLimit(n uint64) Option {
	return func(o *options) {
		o.limit = n
		o.hasLimit = true
	}
}

// NewMutation builds an insert, update or replace query.
//
// values must be non-empty with unique column names; their order is the
// order of the SET clause. A nil value assigns NULL. Select and delete
// are rejected.
func NewMutation(kind Kind, table string, values []Assignment, opts ...Option) (*Query, error) {
	const op = "NewMutation"

	if !kind.IsMutation() {
		return nil, invalidf(op, kind, "kind must be insert, update or replace")
	}
	if err := value.CheckIdentifier(table); err != nil {
		return nil, invalidf(op, kind, "table: %v", err)
	}
	if len(values) == 0 {
		return nil, invalidf(op, kind, "at least one column value is required")
	}

	owned := make([]Assignment, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for i, a := range values {
		if err := value.CheckIdentifier(a.Column); err != nil {
			return nil, invalidf(op, kind, "values[%d]: column: %v", i, err)
		}
		if _, dup := seen[a.Column]; dup {
			return nil, invalidf(op, kind, "values[%d]: duplicate column %q", i, a.Column)
		}
		seen[a.Column] = struct{}{}

		dv, err := value.Normalize(a.Value)
		if err != nil {
			return nil, invalidf(op, kind, "values[%d] (%s): %v", i, a.Column, err)
		}
		owned = append(owned, Assignment{Column: a.Column, Value: dv})
	}

	return newQuery(kind, table, owned, opts), nil
}

// NewFilter builds a select or delete query. Every other kind is rejected.
func NewFilter(kind Kind, table string, opts ...Option) (*Query, error) {
	const op = "NewFilter"

	if !kind.IsFilter() {
		return nil, invalidf(op, kind, "kind must be select or delete")
	}
	if err := value.CheckIdentifier(table); err != nil {
		return nil, invalidf(op, kind, "table: %v", err)
	}

	return newQuery(kind, table, nil, opts), nil
}

func newQuery(kind Kind, table string, values []Assignment, opts []Option) *Query {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Query{
		kind:     kind,
		table:    table,
		values:   values,
		where:    o.where,
		limit:    o.limit,
		hasLimit: o.hasLimit,
	}
}

// Kind returns the operation kind.
func (q *Query) Kind() Kind { return q.kind }

// Table returns the target table name.
func (q *Query) Table() string { return q.table }

// Values returns a copy of the column assignments in SET order. It is
// empty for select and delete.
func (q *Query) Values() []Assignment {
	if len(q.values) == 0 {
		return nil
	}
	out := make([]Assignment, len(q.values))
	for i, a := range q.values {
		out[i] = Assignment{Column: a.Column, Value: cloneValue(a.Value)}
	}
	return out
}

// Where returns the condition tree, nil when the query is unfiltered.
func (q *Query) Where() *where.Tree { return q.where }

// Limit returns the row limit and whether one is set.
func (q *Query) Limit() (uint64, bool) { return q.limit, q.hasLimit }

func cloneValue(v any) any {
	return value.Clone([]any{v})[0]
}
