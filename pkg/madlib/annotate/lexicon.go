package annotate

import (
	"context"
	"strings"
	"unicode"
)

// Lexicon is a dictionary-driven annotator. Words are runs of letters,
// digits, hyphens and apostrophes; every other non-space rune is its own
// token. Tags come from the lookup table (case-insensitive), with a
// fallback for words that are not listed.
type Lexicon struct {
	tags     map[string]string
	fallback string
}

// NewLexicon creates a lexicon annotator. Keys of tags are lowercased.
// Unlisted words get fallback; unlisted punctuation gets ".".
func NewLexicon(tags map[string]string, fallback string) *Lexicon {
	lower := make(map[string]string, len(tags))
	for w, tag := range tags {
		lower[strings.ToLower(w)] = tag
	}
	return &Lexicon{tags: lower, fallback: fallback}
}

// Add sets the tag for a word.
func (l *Lexicon) Add(word, tag string) {
	l.tags[strings.ToLower(word)] = tag
}

// Annotate implements Annotator.
func (l *Lexicon) Annotate(ctx context.Context, text string) (Doc, error) {
	if err := ctx.Err(); err != nil {
		return Doc{}, err
	}
	return Align(text, l.words(text)), nil
}

func (l *Lexicon) words(text string) []Word {
	var words []Word
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, Word{Text: current.String(), Tag: l.lookup(current.String(), false)})
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'':
			current.WriteRune(r)
		case isSpace(r):
			flush()
		default:
			flush()
			words = append(words, Word{Text: string(r), Tag: l.lookup(string(r), true)})
		}
	}
	flush()

	return words
}

func (l *Lexicon) lookup(word string, punct bool) string {
	if tag, ok := l.tags[strings.ToLower(word)]; ok {
		return tag
	}
	if punct {
		return "."
	}
	return l.fallback
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
