package where

import "strings"

// Tree is the root of a WHERE clause: zero or more top-level nodes that
// are implicitly AND-ed. A nil *Tree behaves as an empty tree.
type Tree struct {
	nodes []Node
}

// New builds a tree from top-level nodes. Nil nodes are rejected.
func New(nodes ...Node) (*Tree, error) {
	for i, n := range nodes {
		if isNilNode(n) {
			return nil, conditionErrorf("", 0, "top-level node %d is nil", i)
		}
	}
	owned := make([]Node, len(nodes))
	copy(owned, nodes)
	return &Tree{nodes: owned}, nil
}

// MustNew is like New but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNew(nodes ...Node) *Tree {
	t, err := New(nodes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Nodes returns a copy of the top-level nodes.
func (t *Tree) Nodes() []Node {
	if t == nil {
		return nil
	}
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// IsEmpty reports whether the tree has no nodes, i.e. the statement has no
// WHERE clause.
func (t *Tree) IsEmpty() bool {
	return t == nil || len(t.nodes) == 0
}

// Render returns the condition text and args extended with the tree's
// bound values in render order. An empty tree renders "" and leaves args
// untouched; the caller decides to omit WHERE.
func (t *Tree) Render(args []any) (string, []any) {
	if t.IsEmpty() {
		return "", args
	}
	var b strings.Builder
	for i, n := range t.nodes {
		if i > 0 {
			b.WriteString(" AND ")
		}
		args = n.appendSQL(&b, args, false)
	}
	return b.String(), args
}

// String returns the condition text without its values.
func (t *Tree) String() string {
	s, _ := t.Render(nil)
	return s
}

// Render renders a single node on its own, as if it were the only
// top-level node of a tree.
func Render(n Node, args []any) (string, []any) {
	if isNilNode(n) {
		return "", args
	}
	var b strings.Builder
	args = n.appendSQL(&b, args, false)
	return b.String(), args
}
