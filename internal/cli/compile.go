package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlq/internal/document"
	"github.com/roach88/sqlq/internal/query"
	"github.com/roach88/sqlq/internal/querysql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Driver string // placeholder style is chosen for this driver
	Query  string // compile only this query
}

// CompiledQuery is the JSON form of one compiled query.
type CompiledQuery struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
	Hash string `json:"hash"`
}

// CompilationResult is the JSON payload of the compile command.
type CompilationResult struct {
	Document string          `json:"document"`
	Style    string          `json:"placeholder_style"`
	Queries  []CompiledQuery `json:"queries"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <document>",
		Short: "Compile a query document to parameterized SQL",
		Long: `Compile every query of a YAML, JSON or CUE document and print its SQL,
bound values and identity hash.

Placeholders are "?" unless --driver names a driver with another style
(postgres uses $1, $2, ...). The hash is always computed over the "?" form.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Driver, "driver", "", "render placeholders for this driver (sqlite3|mysql|postgres)")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "compile only the named query")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, err := loadDocument(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}

	queries := loaded.Queries
	if opts.Query != "" {
		n, err := loaded.lookup(formatter, opts.Query)
		if err != nil {
			return err
		}
		queries = []document.Named{n}
	}

	style := querysql.StyleForDriver(opts.Driver)
	result := &CompilationResult{
		Document: path,
		Style:    style.String(),
		Queries:  make([]CompiledQuery, 0, len(queries)),
	}
	for _, n := range queries {
		result.Queries = append(result.Queries, describe(n, style))
	}

	return outputCompileSuccess(formatter, result)
}

// describe compiles n with placeholders in style.
func describe(n document.Named, style querysql.Style) CompiledQuery {
	stmt := n.Query.Compile()
	return CompiledQuery{
		Name: n.Name,
		Kind: n.Query.Kind().String(),
		SQL:  querysql.Rebind(style, stmt.SQL),
		Args: stmt.Args,
		Hash: n.Query.Hash(),
	}
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.Mark(true, "Compiled %d query(ies) from %s", len(result.Queries), result.Document)
	fmt.Fprintln(formatter.Writer)

	for _, q := range result.Queries {
		fmt.Fprintf(formatter.Writer, "%s (%s)\n", q.Name, q.Kind)
		fmt.Fprintf(formatter.Writer, "  sql:  %s\n", q.SQL)
		fmt.Fprintf(formatter.Writer, "  args: %s\n", query.FormatArgs(q.Args))
		fmt.Fprintf(formatter.Writer, "  hash: %s\n", q.Hash)
	}
	return nil
}
