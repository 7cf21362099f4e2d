package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the SQLQ_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SQLQ_DRIVER", "SQLQ_DSN", "SQLQ_FORMAT", "SQLQ_VERBOSE", "SQLQ_CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyFormat, "text", "")
	flags.Bool(KeyVerbose, false, "")
	flags.String(KeyConfig, "", "")
	flags.String(KeyDriver, "sqlite3", "")
	flags.String(KeyDSN, "", "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(afero.NewMemMapFs(), newFlags())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Empty(t, cfg.DSN)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.File)
}

func TestLoad_NilFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Driver)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLQ_DRIVER", "postgres")
	t.Setenv("SQLQ_DSN", "postgres://localhost/app")
	t.Setenv("SQLQ_FORMAT", "json")

	cfg, err := Load(afero.NewMemMapFs(), newFlags())
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "postgres://localhost/app", cfg.DSN)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLQ_DRIVER", "postgres")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--driver", "mysql"}))

	cfg, err := Load(afero.NewMemMapFs(), flags)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLQ_DRIVER", "mysql")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("SQLQ_DSN=file:test.db\nSQLQ_DRIVER=sqlite3\n"), 0644))

	cfg, err := Load(fs, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.DSN)
	assert.Equal(t, "mysql", cfg.Driver, ".env must not override the environment")
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	clearEnv(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sqlq/app.yaml", []byte("driver: postgres\nformat: json\nverbose: true\n"), 0644))

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--config", "/etc/sqlq/app.yaml"}))

	cfg, err := Load(fs, flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/etc/sqlq/app.yaml", cfg.File)
}

func TestLoad_SearchedConfigFile(t *testing.T) {
	clearEnv(t)

	path, err := filepath.Abs(".sqlq.yaml")
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte("dsn: file:found.db\n"), 0644))

	cfg, err := Load(fs, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "file:found.db", cfg.DSN)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing explicit config", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--config", "/nope.yaml"}))
		_, err := Load(afero.NewMemMapFs(), flags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file /nope.yaml")
	})

	t.Run("invalid format", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--format", "xml"}))
		_, err := Load(afero.NewMemMapFs(), flags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid format "xml"`)
	})
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, IsValidFormat("text"))
	assert.True(t, IsValidFormat("json"))
	assert.False(t, IsValidFormat("yaml"))
	assert.False(t, IsValidFormat(""))
}
