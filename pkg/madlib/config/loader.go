package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cognicore/madlib/pkg/madlib/internalerr"
)

// Environment variables that override file settings.
const (
	EnvCorpus      = "MADLIB_CORPUS"
	EnvField       = "MADLIB_FIELD"
	EnvRatio       = "MADLIB_RATIO"
	EnvSeed        = "MADLIB_SEED"
	EnvOut         = "MADLIB_OUT"
	EnvDB          = "MADLIB_DB"
	EnvMaxAttempts = "MADLIB_MAX_ATTEMPTS"
)

// Loader assembles a Config from a YAML file, a .env file and the
// environment, in that order of increasing precedence.
type Loader struct {
	Path    string // YAML config (optional)
	EnvFile string // dotenv file (optional, missing file ignored)

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Load reads all sources and validates the result.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.Path != "" {
		fileCfg, err := LoadFile(l.Path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = fileCfg
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if l.EnvFile != "" {
		// Best-effort: a missing .env is not an error
		dotenv, err := godotenv.Read(l.EnvFile)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
		getenv = layered(getenv, dotenv)
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// layered prefers the real environment and falls back to dotenv values.
func layered(getenv func(string) string, dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvCorpus)); v != "" {
		cfg.Corpus.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvField)); v != "" {
		cfg.Corpus.Field = v
	}
	if v := strings.TrimSpace(getenv(EnvOut)); v != "" {
		cfg.Output.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvDB)); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvRatio)); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", internalerr.ErrInvalidConfig, EnvRatio, v, err)
		}
		cfg.Sampling.Ratio = ratio
	}
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", internalerr.ErrInvalidConfig, EnvSeed, v, err)
		}
		cfg.Sampling.Seed = seed
	}
	if v := strings.TrimSpace(getenv(EnvMaxAttempts)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", internalerr.ErrInvalidConfig, EnvMaxAttempts, v, err)
		}
		cfg.Prompt.MaxAttempts = n
	}
	return nil
}
