// Package madlib turns a news text into a fill-in-the-blank puzzle: it tags
// the text, counts tags, builds one pattern per allowed tag, samples matches
// and blanks the matched tokens.
package madlib

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/blacklist"
	"github.com/cognicore/madlib/pkg/madlib/blank"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/match"
	"github.com/cognicore/madlib/pkg/madlib/prompt"
	"github.com/cognicore/madlib/pkg/madlib/stats"
	"github.com/cognicore/madlib/pkg/madlib/store"
)

// Madlib is the puzzle generator facade
type Madlib struct {
	annotator annotate.Annotator
	blacklist *blacklist.Set
	ratio     float64
	rng       *rand.Rand
}

// Options configures a Madlib instance
type Options struct {
	Annotator annotate.Annotator
	Blacklist *blacklist.Set
	Ratio     float64    // fraction of each pattern's matches to blank
	Rand      *rand.Rand // nil = seeded from the clock
}

// New creates a Madlib instance with the given dependencies
func New(opts Options) *Madlib {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	return &Madlib{
		annotator: opts.Annotator,
		blacklist: opts.Blacklist,
		ratio:     opts.Ratio,
		rng:       rng,
	}
}

// NewRand returns a PCG-backed generator. Seed 0 means time-based.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Rand exposes the generator so corpus picks share the same seed.
func (m *Madlib) Rand() *rand.Rand { return m.rng }

// Result carries every intermediate product of Generate.
type Result struct {
	Doc      annotate.Doc
	Stats    []stats.Stat
	Patterns []match.Pattern
	Matches  []match.Match
	Puzzle   *blank.Puzzle
}

// Generate blanks a sampled fraction of the tokens of text. If nothing was
// blanked, the result is returned together with ErrNoBlanks.
func (m *Madlib) Generate(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", internalerr.ErrInvalidInput)
	}

	doc, err := m.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	res := &Result{Doc: doc}
	res.Stats = stats.Build(doc)
	res.Patterns = stats.Patterns(res.Stats, m.blacklist)

	res.Matches, err = match.Select(res.Patterns, doc, m.ratio, m.rng)
	if err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	res.Puzzle, err = blank.Build(doc, res.Matches)
	if err != nil {
		return nil, fmt.Errorf("build puzzle: %w", err)
	}

	if res.Puzzle.Blanks() == 0 {
		return res, internalerr.ErrNoBlanks
	}
	return res, nil
}

// Origin identifies where a puzzle's text came from.
type Origin struct {
	Source string
	Row    int
	Field  string
}

// NewSession packages a played puzzle for storage. answers may be shorter
// than the puzzle's blanks if the game was cut short.
func NewSession(id string, at time.Time, origin Origin, p *blank.Puzzle, answers []prompt.Answer) store.Session {
	sess := store.Session{
		ID:        id,
		CreatedAt: at,
		Source:    origin.Source,
		Row:       origin.Row,
		Field:     origin.Field,
		Template:  p.Template(blank.Marker),
		Blanks:    make([]store.Blank, len(p.Replacements)),
	}
	for i, r := range p.Replacements {
		b := store.Blank{Short: r.Short, Long: r.Long, Original: r.Original}
		if i < len(answers) {
			b.Answer = answers[i].Word
			b.Attempts = answers[i].Attempts
			b.Accepted = answers[i].Accepted
		}
		sess.Blanks[i] = b
	}
	return sess
}

// Words returns the chosen word of each answer.
func Words(answers []prompt.Answer) []string {
	words := make([]string, len(answers))
	for i, a := range answers {
		words[i] = a.Word
	}
	return words
}
