// Package blank replaces matched tokens with placeholders and renders the
// resulting puzzle.
package blank

import (
	"fmt"
	"strings"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/match"
	"github.com/cognicore/madlib/pkg/madlib/pos"
)

// Marker is the placeholder written for a blank in templates.
const Marker = "{}"

// Replacement describes one blank.
type Replacement struct {
	Short    string // brief label, e.g. "noun"
	Long     string // full explanation, e.g. "noun, plural"
	Original string // masked token text
	Tag      string // masked token fine tag
}

// Segment is either literal text or a blank. Blank is the replacement index,
// or -1 for text.
type Segment struct {
	Text  string
	Blank int
}

// Puzzle is a text with blanks.
type Puzzle struct {
	Segments     []Segment
	Replacements []Replacement
}

// Build walks the sorted matches and blanks the first token of each.
// Matches must be strictly ascending by start and inside doc.
func Build(doc annotate.Doc, matches []match.Match) (*Puzzle, error) {
	p := &Puzzle{}
	var text strings.Builder
	cursor := 0

	flush := func() {
		if text.Len() > 0 {
			p.Segments = append(p.Segments, Segment{Text: text.String(), Blank: -1})
			text.Reset()
		}
	}

	for _, m := range matches {
		if m.Start < cursor || m.Start >= doc.Len() || m.End <= m.Start {
			return nil, fmt.Errorf("%w: match %+v at position %d of %d tokens",
				internalerr.ErrInvalidMatches, m, cursor, doc.Len())
		}

		for _, tok := range doc.Tokens[cursor:m.Start] {
			text.WriteString(tok.Text)
			text.WriteString(tok.Whitespace)
		}
		flush()

		tok := doc.Tokens[m.Start]
		p.Segments = append(p.Segments, Segment{Blank: len(p.Replacements)})
		p.Replacements = append(p.Replacements, Replacement{
			Short:    pos.Brief(tok.Tag),
			Long:     pos.Explain(tok.Tag),
			Original: tok.Text,
			Tag:      tok.Tag,
		})
		text.WriteString(tok.Whitespace)
		cursor = m.Start + 1
	}

	for _, tok := range doc.Tokens[cursor:] {
		text.WriteString(tok.Text)
		text.WriteString(tok.Whitespace)
	}
	flush()

	return p, nil
}

// Blanks returns the number of blanks.
func (p *Puzzle) Blanks() int { return len(p.Replacements) }

// Render writes the text, calling fill for each blank.
func (p *Puzzle) Render(fill func(i int, r Replacement) string) string {
	var b strings.Builder
	for _, s := range p.Segments {
		if s.Blank < 0 {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(fill(s.Blank, p.Replacements[s.Blank]))
	}
	return b.String()
}

// Template renders every blank as marker.
func (p *Puzzle) Template(marker string) string {
	return p.Render(func(int, Replacement) string { return marker })
}

// Brief renders every blank as its short label.
func (p *Puzzle) Brief() string {
	return p.Render(func(_ int, r Replacement) string { return r.Short })
}

// Verbose renders every blank as its long label.
func (p *Puzzle) Verbose() string {
	return p.Render(func(_ int, r Replacement) string { return r.Long })
}

// Original puts the masked tokens back; the result equals the source text.
func (p *Puzzle) Original() string {
	return p.Render(func(_ int, r Replacement) string { return r.Original })
}

// Fill renders the blanks with answers, in blank order. Missing answers
// fall back to the original token.
func (p *Puzzle) Fill(answers []string) string {
	return p.Render(func(i int, r Replacement) string {
		if i < len(answers) {
			return answers[i]
		}
		return r.Original
	})
}

// Hints returns the short or long label of every blank, in order.
func (p *Puzzle) Hints(verbose bool) []string {
	hints := make([]string, len(p.Replacements))
	for i, r := range p.Replacements {
		if verbose {
			hints[i] = r.Long
		} else {
			hints[i] = r.Short
		}
	}
	return hints
}

var lineBreaker = strings.NewReplacer(". ", ".\n", "? ", "?\n")

// BreakLines puts each sentence on its own line.
func BreakLines(s string) string {
	return lineBreaker.Replace(s)
}
