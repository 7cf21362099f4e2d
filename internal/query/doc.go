// Package query describes a single flat table operation as data and
// compiles it to parameterized SQL.
//
// A Query is one of five kinds - select, insert, update, delete, replace -
// over one table, with an optional where.Tree and an optional row limit.
// Mutating kinds (insert, update, replace) also carry an ordered list of
// column assignments.
//
// CONSTRUCTION:
//
// Two constructors enforce the kind/shape correspondence:
//
//	q, err := query.NewMutation(query.Update, "users",
//	    []query.Assignment{query.Set("age", 38)},
//	    query.WithWhere(where.MustNew(where.MustCompare("name", where.OpEq, "Ada"))),
//	)
//
//	q, err := query.NewFilter(query.Delete, "sessions",
//	    query.WithWhere(where.MustNew(where.MustCompare("id", where.OpEq, 42))),
//	    query.WithLimit(1),
//	)
//
// NewMutation rejects select and delete; NewFilter rejects everything
// else. Inputs are copied and values normalized, so a constructed Query
// can never change afterwards. Every constructed Query compiles.
//
// COMPILATION:
//
// Compile renders the statement text and the bound values in placeholder
// order. Values never appear in the text. The result is computed once
// per Query and cached; concurrent callers observe the same statement.
//
// IDENTITY:
//
// Two queries are Equal when their compiled text and bound values match,
// regardless of how they were built. Hash is derived from the same pair.
package query
