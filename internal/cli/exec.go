package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlq/internal/config"
	"github.com/roach88/sqlq/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Driver string
	DSN    string
}

// ExecResult is the JSON payload of the exec command.
type ExecResult struct {
	Query  CompiledQuery `json:"query"`
	Driver string        `json:"driver"`
	store.Result
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <document> <query>",
		Short: "Run one query of a document against a database",
		Long: `Compile the named query and execute it with its bound values.
Select queries print the returned rows; other kinds print the number of
affected rows.

The driver and DSN may also come from SQLQ_DRIVER and SQLQ_DSN, a .env
file, or the config file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Driver, config.KeyDriver, "sqlite3", "database driver (sqlite3|mysql|postgres)")
	cmd.Flags().StringVar(&opts.DSN, config.KeyDSN, "", "data source name")

	return cmd
}

func runExec(opts *ExecOptions, path, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.Load(opts.fs(), cmd.Flags())
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	if cfg.DSN == "" {
		return commandError(formatter, ErrCodeGeneric, "a DSN is required (--dsn or SQLQ_DSN)", nil)
	}

	loaded, err := loadDocument(opts.RootOptions, formatter, path)
	if err != nil {
		return err
	}
	n, err := loaded.lookup(formatter, name)
	if err != nil {
		return err
	}

	formatter.VerboseLog("Opening %s database", cfg.Driver)
	st, err := store.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error(), nil)
	}
	defer st.Close()

	res, err := st.Run(cmd.Context(), n.Query)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error(), nil)
	}

	result := &ExecResult{
		Query:  describe(n, st.Style()),
		Driver: cfg.Driver,
		Result: res,
	}
	return outputExecSuccess(formatter, result)
}

func outputExecSuccess(formatter *OutputFormatter, result *ExecResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	q := result.Query
	if q.Kind != "select" {
		formatter.Mark(true, "%s: %d row(s) affected", q.Name, result.RowsAffected)
		return nil
	}

	formatter.Mark(true, "%s: %d row(s)", q.Name, len(result.Rows))
	for _, row := range result.Rows {
		fields := make([]string, 0, len(row))
		for _, col := range slices.Sorted(maps.Keys(row)) {
			fields = append(fields, fmt.Sprintf("%s=%v", col, row[col]))
		}
		fmt.Fprintf(formatter.Writer, "  %s\n", strings.Join(fields, " "))
	}
	return nil
}
