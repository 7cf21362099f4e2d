package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testDocPath = "/docs/users.yaml"

const testDoc = `
queries:
  - name: adults
    kind: select
    table: users
    where:
      - {column: age, op: gte, value: 18}
    limit: 25
  - name: adults-again
    kind: select
    table: users
    limit: 25
    where:
      - or:
          - {column: age, op: ">=", value: 18}
  - name: minors
    kind: select
    table: users
    where:
      - {column: age, op: lt, value: 18}
  - name: rename
    kind: update
    table: users
    values:
      name: Augusta
    where:
      - {column: name, op: eq, value: Ada}
  - name: purge-minors
    kind: delete
    table: users
    where:
      - {column: age, op: lt, value: 18}
`

// testOptions returns root options over an in-memory filesystem holding
// testDoc, with deterministic trace IDs.
func testOptions(t *testing.T, format string) *RootOptions {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testDocPath, []byte(testDoc), 0644))

	return &RootOptions{
		Format:   format,
		Fs:       fs,
		TraceIDs: NewFixedGenerator("trace-1", "trace-2", "trace-3"),
	}
}

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
