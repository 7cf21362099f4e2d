package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlq/internal/querysql"
)

// EqualResult is the JSON payload of the equal command.
type EqualResult struct {
	Equal bool          `json:"equal"`
	A     CompiledQuery `json:"a"`
	B     CompiledQuery `json:"b"`
}

// NewEqualCommand creates the equal command.
func NewEqualCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equal <document> <query-a> <query-b>",
		Short: "Report whether two queries are identical",
		Long: `Compare two queries of a document by identity: the same compiled SQL
and element-wise equal bound values. Queries built differently but
compiling to the same statement are equal.

Exits 0 when equal and 1 when not.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEqual(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
	return cmd
}

func runEqual(opts *RootOptions, path, nameA, nameB string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, err := loadDocument(opts, formatter, path)
	if err != nil {
		return err
	}
	a, err := loaded.lookup(formatter, nameA)
	if err != nil {
		return err
	}
	b, err := loaded.lookup(formatter, nameB)
	if err != nil {
		return err
	}

	result := &EqualResult{
		Equal: a.Query.Equal(b.Query),
		A:     describe(a, querysql.Question),
		B:     describe(b, querysql.Question),
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if result.Equal {
			formatter.Mark(true, "%s and %s are equal", a.Name, b.Name)
			fmt.Fprintf(formatter.Writer, "  %s\n", a.Query)
		} else {
			formatter.Mark(false, "%s and %s differ", a.Name, b.Name)
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", a.Name, a.Query)
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", b.Name, b.Query)
		}
	}

	if !result.Equal {
		return NewExitError(ExitFailure, fmt.Sprintf("%s and %s are not equal", a.Name, b.Name))
	}
	return nil
}
