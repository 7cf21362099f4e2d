package where

import (
	"strings"

	"github.com/roach88/sqlq/internal/value"
)

// Node is one unit of a predicate.
//
// This is a sealed interface - only *Comparison and *Combinator implement
// it, so callers may type switch exhaustively:
//
//	switch n := node.(type) {
//	case *where.Comparison:
//	    // leaf
//	case *where.Combinator:
//	    // AND / OR group
//	}
type Node interface {
	// appendSQL writes the node to b and returns args extended with the
	// node's bound values. nested is true beneath a combinator.
	appendSQL(b *strings.Builder, args []any, nested bool) []any
}

// Comparison is a leaf predicate: <column> <operator> <value>.
// Comparisons are immutable once constructed.
type Comparison struct {
	column string
	op     Operator
	value  any   // aritySingle
	list   []any // arityList
}

// Compare builds a comparison after validating it.
//
// Single-value operators require a non-nil value; to test for NULL use
// OpIsNull / OpIsNotNull, which take no value (pass nil). OpIn and OpNotIn
// take a non-empty slice or array. Values are normalized and copied, so
// the caller may reuse its variables afterwards.
func Compare(column string, op Operator, v any) (*Comparison, error) {
	if err := value.CheckIdentifier(column); err != nil {
		return nil, conditionErrorf(column, op, "invalid column: %v", err)
	}
	info, ok := operators[op]
	if !ok {
		return nil, conditionErrorf(column, op, "unknown operator")
	}

	c := &Comparison{column: column, op: op}

	switch info.arity {
	case arityNone:
		if v != nil {
			return nil, conditionErrorf(column, op, "operator takes no value, got %T", v)
		}

	case arityList:
		if v == nil {
			return nil, conditionErrorf(column, op, "operator requires a list value")
		}
		list, err := value.NormalizeList(v)
		if err != nil {
			return nil, conditionErrorf(column, op, "%v", err)
		}
		if len(list) == 0 {
			return nil, conditionErrorf(column, op, "operator requires at least one value")
		}
		c.list = list

	default:
		dv, err := value.Normalize(v)
		if err != nil {
			return nil, conditionErrorf(column, op, "%v", err)
		}
		if dv == nil {
			return nil, conditionErrorf(column, op, "operator requires a non-null value")
		}
		c.value = dv
	}

	return c, nil
}

// MustCompare is like Compare but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustCompare(column string, op Operator, v any) *Comparison {
	c, err := Compare(column, op, v)
	if err != nil {
		panic(err)
	}
	return c
}

// Column returns the compared column.
func (c *Comparison) Column() string { return c.column }

// Operator returns the comparison operator.
func (c *Comparison) Operator() Operator { return c.op }

// Value returns the normalized right-hand side: a scalar for single-value
// operators, a fresh []any for list operators, nil for null checks.
func (c *Comparison) Value() any {
	if c.list != nil {
		return value.Clone(c.list)
	}
	return c.value
}

func (c *Comparison) appendSQL(b *strings.Builder, args []any, _ bool) []any {
	info := operators[c.op]
	b.WriteString(c.column)
	b.WriteByte(' ')
	b.WriteString(info.token)

	switch info.arity {
	case arityNone:
		return args
	case arityList:
		b.WriteString(" (")
		for i, v := range c.list {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('?')
			args = append(args, v)
		}
		b.WriteByte(')')
		return args
	default:
		b.WriteString(" ?")
		return append(args, c.value)
	}
}

// Combinator joins an ordered, non-empty list of child nodes with AND or OR.
type Combinator struct {
	logic    Logic
	children []Node
}

// Combine builds a combinator. It rejects an unknown logic, an empty child
// list, and nil children.
func Combine(logic Logic, children ...Node) (*Combinator, error) {
	if logic != LogicAnd && logic != LogicOr {
		return nil, conditionErrorf("", 0, "unknown logic %s", logic)
	}
	if len(children) == 0 {
		return nil, conditionErrorf("", 0, "%s requires at least one condition", logic)
	}
	for i, child := range children {
		if isNilNode(child) {
			return nil, conditionErrorf("", 0, "%s child %d is nil", logic, i)
		}
	}

	owned := make([]Node, len(children))
	copy(owned, children)
	return &Combinator{logic: logic, children: owned}, nil
}

// And is shorthand for Combine(LogicAnd, children...).
func And(children ...Node) (*Combinator, error) {
	return Combine(LogicAnd, children...)
}

// Or is shorthand for Combine(LogicOr, children...).
func Or(children ...Node) (*Combinator, error) {
	return Combine(LogicOr, children...)
}

// MustAnd is like And but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustAnd(children ...Node) *Combinator {
	c, err := And(children...)
	if err != nil {
		panic(err)
	}
	return c
}

// MustOr is like Or but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustOr(children ...Node) *Combinator {
	c, err := Or(children...)
	if err != nil {
		panic(err)
	}
	return c
}

// Logic returns the combinator's connective.
func (c *Combinator) Logic() Logic { return c.logic }

// Children returns a copy of the child list.
func (c *Combinator) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Combinator) appendSQL(b *strings.Builder, args []any, nested bool) []any {
	paren := nested || len(c.children) > 1
	if paren {
		b.WriteByte('(')
	}
	sep := " " + c.logic.String() + " "
	for i, child := range c.children {
		if i > 0 {
			b.WriteString(sep)
		}
		args = child.appendSQL(b, args, true)
	}
	if paren {
		b.WriteByte(')')
	}
	return args
}

// isNilNode catches both a nil interface and a typed nil pointer.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Comparison:
		return v == nil
	case *Combinator:
		return v == nil
	default:
		return false
	}
}
