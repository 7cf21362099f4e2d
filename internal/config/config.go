// Package config resolves CLI settings from flags, SQLQ_* environment
// variables, an optional .env file and an optional .sqlq.yaml config file.
//
// Precedence, highest first: explicitly set flags, environment (including
// values loaded from .env), config file, flag defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SQLQ"

// Setting keys. Each doubles as a flag name and, upper-cased with the
// prefix, as an environment variable (SQLQ_DRIVER, ...).
const (
	KeyDriver  = "driver"
	KeyDSN     = "dsn"
	KeyFormat  = "format"
	KeyVerbose = "verbose"
	KeyConfig  = "config"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// Config holds resolved settings.
type Config struct {
	Driver  string
	DSN     string
	Format  string
	Verbose bool

	// File is the config file that was read, if any.
	File string
}

// Load resolves settings. flags may be nil; flags it does not define are
// skipped.
func Load(fs afero.Fs, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(fs, ".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyFormat, "text")

	for _, key := range []string{KeyDriver, KeyDSN, KeyFormat, KeyVerbose, KeyConfig} {
		if flags == nil {
			break
		}
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", key, err)
			}
		}
	}

	if err := readConfigFile(v, v.GetString(KeyConfig)); err != nil {
		return nil, err
	}

	cfg := &Config{
		Driver:  v.GetString(KeyDriver),
		DSN:     v.GetString(KeyDSN),
		Format:  v.GetString(KeyFormat),
		Verbose: v.GetBool(KeyVerbose),
		File:    v.ConfigFileUsed(),
	}
	if !IsValidFormat(cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats)
	}
	return cfg, nil
}

// IsValidFormat reports whether format is one of ValidFormats.
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// readConfigFile reads an explicit config file, or searches for .sqlq.yaml
// in the working directory and the home directory. A missing searched file
// is not an error.
func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName(".sqlq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// loadDotEnv sets variables from path that are not already present in the
// environment.
func loadDotEnv(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); err != nil {
		return nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for key, val := range vars {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
	}
	return nil
}
