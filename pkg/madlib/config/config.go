package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/madlib/pkg/madlib/blacklist"
	"github.com/cognicore/madlib/pkg/madlib/corpus"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
)

// Config holds every tunable of a madlib run.
type Config struct {
	Corpus    CorpusConfig   `yaml:"corpus"`
	Sampling  SamplingConfig `yaml:"sampling"`
	Blacklist []string       `yaml:"blacklist"`
	Prompt    PromptConfig   `yaml:"prompt"`
	Output    OutputConfig   `yaml:"output"`
	Store     StoreConfig    `yaml:"store"`
	Draws     int            `yaml:"draws"`
}

// CorpusConfig selects the dataset and the text column.
type CorpusConfig struct {
	Path  string `yaml:"path"`
	Field string `yaml:"field"`
	Clean bool   `yaml:"clean"`
}

// SamplingConfig controls how many matches are blanked.
type SamplingConfig struct {
	Ratio float64 `yaml:"ratio"`
	Seed  uint64  `yaml:"seed"` // 0 = time-based
}

// PromptConfig controls the interactive loop.
type PromptConfig struct {
	MaxAttempts int  `yaml:"max_attempts"` // 0 = unbounded
	Verbose     bool `yaml:"verbose"`
}

// OutputConfig describes the report file.
type OutputConfig struct {
	Path       string `yaml:"path"`
	BreakLines bool   `yaml:"break_lines"`
}

// StoreConfig enables session persistence when Path is set.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			Path:  "archive/cnn_dailymail/test.csv",
			Field: string(corpus.Highlights),
			Clean: true,
		},
		Sampling: SamplingConfig{
			Ratio: 0.1,
		},
		Blacklist: append([]string(nil), blacklist.Default...),
		Prompt: PromptConfig{
			MaxAttempts: 5,
		},
		Output: OutputConfig{
			Path:       "new.txt",
			BreakLines: true,
		},
		Draws: 5,
	}
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Sampling.Ratio <= 0 || c.Sampling.Ratio > 1 {
		return fmt.Errorf("%w: sampling.ratio %v outside (0,1]", internalerr.ErrInvalidConfig, c.Sampling.Ratio)
	}
	if _, err := corpus.ParseField(c.Corpus.Field); err != nil {
		return err
	}
	if c.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus.path is empty", internalerr.ErrInvalidConfig)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is empty", internalerr.ErrInvalidConfig)
	}
	if c.Prompt.MaxAttempts < 0 {
		return fmt.Errorf("%w: prompt.max_attempts %d is negative", internalerr.ErrInvalidConfig, c.Prompt.MaxAttempts)
	}
	if c.Draws < 1 {
		return fmt.Errorf("%w: draws %d < 1", internalerr.ErrInvalidConfig, c.Draws)
	}
	return nil
}

// Field returns the parsed corpus field; call Validate first.
func (c Config) Field() corpus.Field {
	f, err := corpus.ParseField(c.Corpus.Field)
	if err != nil {
		return corpus.Highlights
	}
	return f
}

// BlacklistSet builds the blacklist.
func (c Config) BlacklistSet() *blacklist.Set {
	return blacklist.New(c.Blacklist)
}
