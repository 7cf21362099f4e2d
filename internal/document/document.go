package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sqlq/internal/query"
)

// Document is a set of named query definitions.
type Document struct {
	Queries []Definition `yaml:"queries"`
}

// Definition describes one query.
type Definition struct {
	// Name identifies the query within its document.
	Name string `yaml:"name"`

	// Kind is select, insert, update, delete or replace.
	Kind string `yaml:"kind"`

	// Table is the target table.
	Table string `yaml:"table"`

	// Values are the column assignments of a mutating query, in order.
	Values Values `yaml:"values,omitempty"`

	// Where holds the top-level conditions, implicitly AND-ed.
	Where []Condition `yaml:"where,omitempty"`

	// Limit caps affected or returned rows.
	Limit *uint64 `yaml:"limit,omitempty"`
}

// Values is an ordered column mapping.
type Values []query.Assignment

// UnmarshalYAML decodes a mapping node while keeping its key order.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: values must be a mapping", node.Line)
	}

	out := make(Values, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var column string
		if err := keyNode.Decode(&column); err != nil {
			return fmt.Errorf("line %d: column name: %w", keyNode.Line, err)
		}
		var val any
		if err := valNode.Decode(&val); err != nil {
			return fmt.Errorf("line %d: value of %q: %w", valNode.Line, column, err)
		}
		out = append(out, query.Set(column, val))
	}

	*v = out
	return nil
}

// Find returns the definition with the given name.
func (d *Document) Find(name string) (*Definition, bool) {
	for i := range d.Queries {
		if d.Queries[i].Name == name {
			return &d.Queries[i], true
		}
	}
	return nil, false
}

// Named is a built query together with its definition name.
type Named struct {
	Name  string
	Query *query.Query
}

// Build constructs every query in the document, stopping at the first
// invalid definition.
func (d *Document) Build() ([]Named, error) {
	out := make([]Named, 0, len(d.Queries))
	for i := range d.Queries {
		q, err := d.Queries[i].Build()
		if err != nil {
			return nil, fmt.Errorf("queries[%d] (%s): %w", i, d.Queries[i].Name, err)
		}
		out = append(out, Named{Name: d.Queries[i].Name, Query: q})
	}
	return out, nil
}

// Build constructs the query described by the definition.
func (def *Definition) Build() (*query.Query, error) {
	kind, err := query.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	var opts []query.Option
	if len(def.Where) > 0 {
		tree, err := buildTree(def.Where)
		if err != nil {
			return nil, err
		}
		opts = append(opts, query.WithWhere(tree))
	}
	if def.Limit != nil {
		opts = append(opts, query.WithLimit(*def.Limit))
	}

	if kind.IsMutation() {
		return query.NewMutation(kind, def.Table, def.Values, opts...)
	}
	if len(def.Values) > 0 {
		return nil, fmt.Errorf("values are not allowed for %s queries", kind)
	}
	return query.NewFilter(kind, def.Table, opts...)
}

// validate checks document-level structure. Query-level checks happen in
// Build.
func validate(d *Document) error {
	if len(d.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	seen := make(map[string]int, len(d.Queries))
	for i, def := range d.Queries {
		if def.Name == "" {
			return fmt.Errorf("queries[%d]: name is required", i)
		}
		if prev, dup := seen[def.Name]; dup {
			return fmt.Errorf("queries[%d]: duplicate name %q (first at queries[%d])", i, def.Name, prev)
		}
		seen[def.Name] = i

		if def.Kind == "" {
			return fmt.Errorf("queries[%d] (%s): kind is required", i, def.Name)
		}
		if def.Table == "" {
			return fmt.Errorf("queries[%d] (%s): table is required", i, def.Name)
		}
	}
	return nil
}
