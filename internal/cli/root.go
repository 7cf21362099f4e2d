package cli

import (
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/sqlq/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Fs is where documents, .env and config files are read from.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// TraceIDs generates JSON trace IDs. Defaults to UUIDv7.
	TraceIDs TraceIDGenerator
}

// NewRootCommand creates the root command for the sqlq CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Fs: afero.NewOsFs()})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqlq",
		Short: "sqlq - structured queries compiled to SQL",
		Long: `Compile declarative query documents (YAML, JSON or CUE) into
parameterized SQL, compare queries by their compiled identity, and run
them against a database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.fs(), cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "configuration", err)
			}
			opts.Format = cfg.Format
			opts.Verbose = cfg.Verbose
			setupLogging(cmd, opts.Verbose)
			if cfg.File != "" {
				slog.Debug("config file loaded", "path", cfg.File)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, config.KeyVerbose, "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, config.KeyFormat, "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, config.KeyConfig, "", "config file (default: .sqlq.yaml in . or $HOME)")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewEqualCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

// setupLogging installs a text slog handler on stderr. Debug records,
// such as executed statements, are shown with --verbose.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func (o *RootOptions) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

// formatter builds the output formatter for a command run.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		TraceIDs:  o.TraceIDs,
	}
}
