package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlq/internal/query"
	"github.com/roach88/sqlq/internal/where"
)

const usersYAML = `
queries:
  - name: all-users
    kind: select
    table: users
  - name: close-session
    kind: delete
    table: sessions
    where:
      - {column: id, op: eq, value: 42}
      - or:
          - {column: state, op: in, value: [open, idle]}
          - {column: expires_at, op: is_null}
    limit: 1
  - name: add-user
    kind: insert
    table: users
    values:
      name: Ada
      age: 37
  - name: birthday
    kind: update
    table: users
    values:
      age: 38
    where:
      - {column: name, op: "=", value: Ada}
`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestLoad_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/q/users.yaml", usersYAML)

	doc, err := Load(fs, "/q/users.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Queries, 4)

	built, err := doc.Build()
	require.NoError(t, err)

	want := []struct {
		name string
		sql  string
		args []any
	}{
		{"all-users", "SELECT * FROM users", []any{}},
		{"close-session", "DELETE FROM sessions WHERE id = ? AND (state IN (?, ?) OR expires_at IS NULL) LIMIT 1", []any{int64(42), "open", "idle"}},
		{"add-user", "INSERT INTO users SET name = ?, age = ?", []any{"Ada", int64(37)}},
		{"birthday", "UPDATE users SET age = ? WHERE name = ?", []any{int64(38), "Ada"}},
	}
	for i, w := range want {
		assert.Equal(t, w.name, built[i].Name)
		stmt := built[i].Query.Compile()
		assert.Equal(t, w.sql, stmt.SQL, w.name)
		assert.Equal(t, w.args, stmt.Args, w.name)
	}
}

func TestLoad_ValuesKeepDocumentOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/q.yml", `
queries:
  - name: wide
    kind: replace
    table: t
    values:
      zeta: 1
      alpha: 2
      mid: 3
`)

	doc, err := Load(fs, "/q.yml")
	require.NoError(t, err)

	q, err := doc.Queries[0].Build()
	require.NoError(t, err)
	assert.Equal(t, "REPLACE t SET zeta = ?, alpha = ?, mid = ?", q.SQL())
}

func TestLoad_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/q.json", `{
  "queries": [
    {"name": "add-user", "kind": "insert", "table": "users", "values": {"name": "Ada", "age": 37}}
  ]
}`)

	doc, err := Load(fs, "/q.json")
	require.NoError(t, err)

	q, err := doc.Queries[0].Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users SET name = ?, age = ?", q.SQL())
}

func TestLoad_CUEMatchesYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/q/users.yaml", usersYAML)
	writeFile(t, fs, "/q/users.cue", `
queries: [
	{name: "all-users", kind: "select", table: "users"},
	{
		name:  "close-session"
		kind:  "delete"
		table: "sessions"
		where: [
			{column: "id", op: "eq", value: 42},
			{or: [
				{column: "state", op: "in", value: ["open", "idle"]},
				{column: "expires_at", op: "is_null"},
			]},
		]
		limit: 1
	},
	{
		name:  "add-user"
		kind:  "insert"
		table: "users"
		values: {
			name: "Ada"
			age:  37
		}
	},
	{
		name:  "birthday"
		kind:  "update"
		table: "users"
		values: age: 38
		where: [{column: "name", op: "=", value: "Ada"}]
	},
]
`)

	fromYAML, err := Load(fs, "/q/users.yaml")
	require.NoError(t, err)
	fromCUE, err := Load(fs, "/q/users.cue")
	require.NoError(t, err)

	a, err := fromYAML.Build()
	require.NoError(t, err)
	b, err := fromCUE.Build()
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.True(t, a[i].Query.Equal(b[i].Query), "%s: %s vs %s", a[i].Name, a[i].Query, b[i].Query)
		assert.Equal(t, a[i].Query.Hash(), b[i].Query.Hash())
	}
}

func TestLoad_CUEErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/bad.cue", `queries: [{name: "x", kind: "select", table: 1 & 2}]`)

	_, err := Load(fs, "/bad.cue")
	require.Error(t, err)
	var ce *CUEError
	assert.ErrorAs(t, err, &ce)

	writeFile(t, fs, "/open.cue", `queries: [{name: "x", kind: "select", table: string}]`)
	_, err = Load(fs, "/open.cue")
	assert.Error(t, err, "non-concrete values must be rejected")
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")

	_, err = Load(fs, "/queries.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document extension")

	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"empty", "queries: []", "must be non-empty"},
		{"unknown field", "queries:\n  - {name: a, kind: select, table: t, limt: 1}", "limt"},
		{"missing name", "queries:\n  - {kind: select, table: t}", "name is required"},
		{"missing kind", "queries:\n  - {name: a, table: t}", "kind is required"},
		{"missing table", "queries:\n  - {name: a, kind: select}", "table is required"},
		{"duplicate name", "queries:\n  - {name: a, kind: select, table: t}\n  - {name: a, kind: delete, table: t}", `duplicate name "a"`},
		{"values not mapping", "queries:\n  - {name: a, kind: insert, table: t, values: [1, 2]}", "values must be a mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, fs, "/doc.yaml", tt.content)
			_, err := Load(fs, "/doc.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		msg  string
	}{
		{"unknown kind", Definition{Name: "a", Kind: "upsert", Table: "t"}, "unknown query kind"},
		{"values on select", Definition{Name: "a", Kind: "select", Table: "t", Values: Values{query.Set("x", 1)}}, "values are not allowed"},
		{"insert without values", Definition{Name: "a", Kind: "insert", Table: "t"}, "at least one column value"},
		{"bad operator", Definition{Name: "a", Kind: "select", Table: "t", Where: []Condition{{Column: "x", Op: "between", Value: 1}}}, "where[0]: unknown operator"},
		{"missing value", Definition{Name: "a", Kind: "select", Table: "t", Where: []Condition{{Column: "x", Op: "eq"}}}, "non-null"},
		{"mixed forms", Definition{Name: "a", Kind: "select", Table: "t", Where: []Condition{{Column: "x", Op: "eq", Value: 1, Or: []Condition{{Column: "y", Op: "eq", Value: 2}}}}}, "exactly one of"},
		{"empty group", Definition{Name: "a", Kind: "select", Table: "t", Where: []Condition{{And: []Condition{}}}}, "where[0].and"},
		{"nested error path", Definition{Name: "a", Kind: "select", Table: "t", Where: []Condition{{Or: []Condition{{Column: "y", Op: "in", Value: 3}}}}}, "where[0].or[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBuild_WhereOperatorsFromNames(t *testing.T) {
	def := Definition{
		Name:  "a",
		Kind:  "select",
		Table: "t",
		Where: []Condition{
			{Column: "a", Op: "gte", Value: 1},
			{Column: "b", Op: "NOT LIKE", Value: "x%"},
			{Column: "c", Op: "is_not_null"},
		},
	}
	q, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a >= ? AND b NOT LIKE ? AND c IS NOT NULL", q.SQL())

	nodes := q.Where().Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, where.OpGte, nodes[0].(*where.Comparison).Operator())
}

func TestFind(t *testing.T) {
	doc, err := Parse([]byte(usersYAML), FormatYAML, "")
	require.NoError(t, err)

	def, ok := doc.Find("birthday")
	require.True(t, ok)
	assert.Equal(t, "update", def.Kind)

	_, ok = doc.Find("nope")
	assert.False(t, ok)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
		"a.cue":  FormatCUE,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("queries: []"), Format("toml"), "")
	assert.Error(t, err)
}
