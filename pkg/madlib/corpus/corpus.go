// Package corpus loads article/highlight datasets and picks samples from them.
package corpus

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/madlib/pkg/madlib/internalerr"
)

// Field names a text column of a sample.
type Field string

const (
	Article    Field = "article"
	Highlights Field = "highlights"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case Article, Highlights:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown corpus field %q", internalerr.ErrInvalidConfig, s)
}

// Sample is one corpus row.
type Sample struct {
	Row        int
	Article    string
	Highlights string
}

// Text returns the sample's text for the given field.
func (s Sample) Text(f Field) string {
	if f == Article {
		return s.Article
	}
	return s.Highlights
}

// Corpus is an in-memory dataset.
type Corpus struct {
	Path    string
	Samples []Sample
}

// Options configures loading.
type Options struct {
	Logger *slog.Logger // receives warnings for skipped JSONL lines
}

// Load reads a .csv or .jsonl corpus.
func Load(path string, opts Options) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	var samples []Sample
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		samples, err = ReadJSONL(f, opts.Logger)
	default:
		samples, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	return &Corpus{Path: path, Samples: samples}, nil
}

// ReadCSV parses a CSV with a header row containing article and highlights.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, internalerr.ErrEmptyCorpus
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	articleCol, highlightsCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case string(Article):
			articleCol = i
		case string(Highlights):
			highlightsCol = i
		}
	}
	if articleCol < 0 {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrMissingColumn, Article)
	}
	if highlightsCol < 0 {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrMissingColumn, Highlights)
	}
	need := max(articleCol, highlightsCol) + 1

	var samples []Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedRow, err)
		}
		if len(rec) < need {
			return nil, fmt.Errorf("%w: row %d has %d fields, need %d",
				internalerr.ErrMalformedRow, len(samples), len(rec), need)
		}
		samples = append(samples, Sample{
			Row:        len(samples),
			Article:    rec[articleCol],
			Highlights: rec[highlightsCol],
		})
	}

	if len(samples) == 0 {
		return nil, internalerr.ErrEmptyCorpus
	}
	return samples, nil
}

// jsonDoc accepts both the madlib export format and news docs with a text body.
type jsonDoc struct {
	Article    string `json:"article"`
	Text       string `json:"text"`
	Highlights string `json:"highlights"`
	Title      string `json:"title"`
}

// ReadJSONL parses one JSON object per line. Malformed lines are skipped
// with a warning.
func ReadJSONL(r io.Reader, logger *slog.Logger) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var samples []Sample
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc jsonDoc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			logger.Warn("skipping malformed JSON line", "line", i+1, "error", err)
			continue
		}

		s := Sample{Row: len(samples), Article: doc.Article, Highlights: doc.Highlights}
		if s.Article == "" {
			s.Article = doc.Text
		}
		if s.Highlights == "" {
			s.Highlights = doc.Title
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, internalerr.ErrEmptyCorpus
	}
	return samples, nil
}

// Len returns the number of samples.
func (c *Corpus) Len() int { return len(c.Samples) }

// Row returns sample i.
func (c *Corpus) Row(i int) (Sample, error) {
	if i < 0 || i >= len(c.Samples) {
		return Sample{}, fmt.Errorf("%w: row %d of %d", internalerr.ErrNotFound, i, len(c.Samples))
	}
	return c.Samples[i], nil
}

// Pick returns a sample chosen uniformly at random.
func (c *Corpus) Pick(rng *rand.Rand) (Sample, error) {
	if len(c.Samples) == 0 {
		return Sample{}, internalerr.ErrEmptyCorpus
	}
	return c.Samples[rng.IntN(len(c.Samples))], nil
}
