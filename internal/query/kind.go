package query

import (
	"fmt"
	"strings"
)

// Kind is the operation a Query performs. The set is closed.
type Kind int

const (
	Select Kind = iota + 1
	Insert
	Update
	Delete
	Replace
)

var kindNames = map[Kind]string{
	Select:  "select",
	Insert:  "insert",
	Update:  "update",
	Delete:  "delete",
	Replace: "replace",
}

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	return []Kind{Select, Insert, Update, Delete, Replace}
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsMutation reports whether the kind writes column values and is built
// with NewMutation.
func (k Kind) IsMutation() bool {
	return k == Insert || k == Update || k == Replace
}

// IsFilter reports whether the kind is built with NewFilter.
func (k Kind) IsFilter() bool {
	return k == Select || k == Delete
}

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == needle {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown query kind %q", s)
}
