// Package where models WHERE-clause predicates as data.
//
// A predicate is a tree of Nodes. Node is a sealed interface with exactly
// two implementations:
//   - *Comparison: a single column/operator/value test (a leaf)
//   - *Combinator: AND or OR over an ordered, non-empty list of children
//
// A Tree holds zero or more top-level nodes that are implicitly AND-ed.
// An empty Tree means "no WHERE clause", which is not the same thing as
// "WHERE TRUE".
//
// RENDERING:
//
// Rendering never inlines a value. Each value becomes a "?" placeholder and
// is appended to an argument list in render order: top-level nodes in
// stored order, depth-first within each combinator.
//
//	tree, _ := where.New(
//	    where.MustCompare("a", where.OpEq, 1),
//	    where.MustOr(
//	        where.MustCompare("b", where.OpEq, 2),
//	        where.MustCompare("c", where.OpEq, 3),
//	    ),
//	)
//	sql, args := tree.Render(nil)
//	// sql:  a = ? AND (b = ? OR c = ?)
//	// args: [1 2 3]
//
// A combinator is parenthesized whenever it has more than one child or
// sits beneath another combinator, so nesting depth never changes how the
// rendered SQL groups.
//
// VALIDATION:
//
// Every constructor validates its input and returns an error wrapping
// ErrInvalidCondition. A node that exists is renderable; Render has no
// failure mode.
package where
