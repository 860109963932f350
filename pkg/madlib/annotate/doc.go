package annotate

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/madlib/pkg/madlib/pos"
)

// Token is a single annotated token.
type Token struct {
	Text       string // exact source text of the token
	Whitespace string // whitespace following the token in the source
	Tag        string // fine-grained (Penn Treebank) tag
	POS        string // coarse (universal) tag
}

// Doc is an annotated text. Concatenating Text+Whitespace over Tokens
// reproduces Source byte for byte.
type Doc struct {
	Source string
	Tokens []Token
}

// Annotator tokenizes text and assigns a part-of-speech tag to every token.
type Annotator interface {
	Annotate(ctx context.Context, text string) (Doc, error)
}

// Len returns the number of tokens.
func (d Doc) Len() int { return len(d.Tokens) }

// Span returns the text of tokens [start, end), including the whitespace
// between them but not the trailing whitespace of the last token.
func (d Doc) Span(start, end int) string {
	if start >= end {
		return ""
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(d.Tokens[i].Text)
		if i < end-1 {
			b.WriteString(d.Tokens[i].Whitespace)
		}
	}
	return b.String()
}

// String reassembles the document text from its tokens.
func (d Doc) String() string {
	var b strings.Builder
	b.Grow(len(d.Source))
	for _, t := range d.Tokens {
		b.WriteString(t.Text)
		b.WriteString(t.Whitespace)
	}
	return b.String()
}

// Word is a tagger output before alignment with the source text.
type Word struct {
	Text string
	Tag  string
}

// Align locates each word in source, in order, and builds a Doc whose tokens
// cover source exactly. Curly quotes in source match the straight quotes a
// tagger emits for them. Leading whitespace is kept as a SPACE token, skipped
// punctuation becomes a punctuation token, and any other text the tagger
// skipped or rewrote becomes an Unknown token.
func Align(source string, words []Word) Doc {
	doc := Doc{Source: source, Tokens: make([]Token, 0, len(words))}
	cursor := 0

	for _, w := range words {
		if w.Text == "" {
			continue
		}
		start, end, ok := find(source[cursor:], w.Text)
		if !ok {
			continue
		}
		doc.absorbGap(source[cursor : cursor+start])
		doc.addWord(source[cursor+start:cursor+end], w.Tag)
		cursor += end
	}
	doc.absorbGap(source[cursor:])

	return doc
}

// addWord appends the source text of one tagger word. An opening quote glued
// to a word is split off, and pure punctuation always gets a punctuation tag.
func (d *Doc) addWord(text, tag string) {
	if r, size := utf8.DecodeRuneInString(text); isOpeningQuote(r) && size < len(text) {
		d.Tokens = append(d.Tokens, punctToken(text[:size]))
		text = text[size:]
	}
	if isPunct(text) {
		if u := pos.Universal(tag); u != pos.PUNCT && u != pos.SYM {
			d.Tokens = append(d.Tokens, punctToken(text))
			return
		}
	}
	d.Tokens = append(d.Tokens, Token{Text: text, Tag: tag, POS: pos.Universal(tag)})
}

// absorbGap attaches text found between two aligned words.
func (d *Doc) absorbGap(gap string) {
	for gap != "" {
		ws := leadingSpace(gap)
		if ws != "" {
			if n := len(d.Tokens); n > 0 {
				d.Tokens[n-1].Whitespace += ws
			} else {
				d.Tokens = append(d.Tokens, Token{Text: ws, Tag: "SP", POS: pos.SPACE})
			}
			gap = gap[len(ws):]
			continue
		}
		end := strings.IndexFunc(gap, isSpace)
		if end < 0 {
			end = len(gap)
		}
		if isPunct(gap[:end]) {
			d.Tokens = append(d.Tokens, punctToken(gap[:end]))
		} else {
			d.Tokens = append(d.Tokens, Token{Text: gap[:end], Tag: pos.Unknown, POS: pos.X})
		}
		gap = gap[end:]
	}
}

func punctToken(text string) Token {
	return Token{Text: text, Tag: pos.PunctTag(text), POS: pos.PUNCT}
}

func leadingSpace(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return !isSpace(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}
