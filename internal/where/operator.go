package where

import (
	"fmt"
	"strings"
)

// Operator identifies a comparison operator.
type Operator int

const (
	OpEq Operator = iota + 1
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull
)

// arity describes what an operator expects on its right-hand side.
type arity int

const (
	aritySingle arity = iota // exactly one non-nil value
	arityList                // a non-empty list, one placeholder per element
	arityNone                // no value at all
)

type operatorInfo struct {
	name  string
	token string
	arity arity
}

// operators is the operator registry. Adding an operator means adding an
// entry here; rendering and validation are driven entirely by it.
var operators = map[Operator]operatorInfo{
	OpEq:        {name: "eq", token: "=", arity: aritySingle},
	OpNe:        {name: "ne", token: "<>", arity: aritySingle},
	OpLt:        {name: "lt", token: "<", arity: aritySingle},
	OpLte:       {name: "lte", token: "<=", arity: aritySingle},
	OpGt:        {name: "gt", token: ">", arity: aritySingle},
	OpGte:       {name: "gte", token: ">=", arity: aritySingle},
	OpLike:      {name: "like", token: "LIKE", arity: aritySingle},
	OpNotLike:   {name: "not_like", token: "NOT LIKE", arity: aritySingle},
	OpIn:        {name: "in", token: "IN", arity: arityList},
	OpNotIn:     {name: "not_in", token: "NOT IN", arity: arityList},
	OpIsNull:    {name: "is_null", token: "IS NULL", arity: arityNone},
	OpIsNotNull: {name: "is_not_null", token: "IS NOT NULL", arity: arityNone},
}

// String returns the operator's short name, e.g. "eq" or "not_in".
func (o Operator) String() string {
	if info, ok := operators[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Token returns the SQL token the operator renders as, e.g. "<>".
func (o Operator) Token() string {
	return operators[o].token
}

// Valid reports whether o is a registered operator.
func (o Operator) Valid() bool {
	_, ok := operators[o]
	return ok
}

// ParseOperator resolves an operator from its short name ("gte") or its
// SQL token (">="). Matching is case-insensitive; "!=" is accepted as an
// alias of "<>".
func ParseOperator(s string) (Operator, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "!=" {
		return OpNe, nil
	}
	for op, info := range operators {
		if needle == info.name || needle == strings.ToLower(info.token) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Logic is the boolean connective of a Combinator.
type Logic int

const (
	LogicAnd Logic = iota + 1
	LogicOr
)

// String returns "AND" or "OR".
func (l Logic) String() string {
	switch l {
	case LogicAnd:
		return "AND"
	case LogicOr:
		return "OR"
	default:
		return fmt.Sprintf("Logic(%d)", int(l))
	}
}
