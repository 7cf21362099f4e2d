package document

import (
	"fmt"

	"github.com/roach88/sqlq/internal/where"
)

// Condition is either a comparison (column, op, value) or a group (and,
// or). Exactly one form must be used.
type Condition struct {
	Column string      `yaml:"column,omitempty"`
	Op     string      `yaml:"op,omitempty"`
	Value  any         `yaml:"value,omitempty"`
	And    []Condition `yaml:"and,omitempty"`
	Or     []Condition `yaml:"or,omitempty"`
}

func buildTree(conds []Condition) (*where.Tree, error) {
	nodes := make([]where.Node, 0, len(conds))
	for i, c := range conds {
		n, err := c.node(fmt.Sprintf("where[%d]", i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return where.New(nodes...)
}

func (c Condition) node(path string) (where.Node, error) {
	forms := 0
	if c.Column != "" || c.Op != "" {
		forms++
	}
	if c.And != nil {
		forms++
	}
	if c.Or != nil {
		forms++
	}
	if forms != 1 {
		return nil, fmt.Errorf("%s: exactly one of column/op, and, or must be set", path)
	}

	switch {
	case c.And != nil:
		return c.group(path+".and", where.LogicAnd, c.And)
	case c.Or != nil:
		return c.group(path+".or", where.LogicOr, c.Or)
	}

	op, err := where.ParseOperator(c.Op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cmp, err := where.Compare(c.Column, op, c.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmp, nil
}

func (c Condition) group(path string, logic where.Logic, children []Condition) (where.Node, error) {
	nodes := make([]where.Node, 0, len(children))
	for i, child := range children {
		n, err := child.node(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	comb, err := where.Combine(logic, nodes...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return comb, nil
}
