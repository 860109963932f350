// Package prompt runs the interactive fill-in loop.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/blank"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/pos"
)

// Messages printed by the prompter.
const (
	RetryMessage       = "Try again."
	GiveUpMessage      = "Moving on."
	DefaultMaxAttempts = 5
)

// Answer is the outcome of one blank.
type Answer struct {
	Word     string // accepted word, or the original token after giving up
	Attempts int    // inputs read for this blank
	Accepted bool   // false if MaxAttempts ran out
}

// Prompter asks for one word per blank and checks its part of speech.
type Prompter struct {
	Annotator   annotate.Annotator
	Out         io.Writer
	MaxAttempts int  // 0 = ask until the answer matches
	Verbose     bool // include the long tag in prompts

	in *bufio.Reader
}

// New creates a prompter reading lines from in.
func New(in io.Reader, out io.Writer, a annotate.Annotator) *Prompter {
	return &Prompter{
		Annotator:   a,
		Out:         out,
		MaxAttempts: DefaultMaxAttempts,
		in:          bufio.NewReader(in),
	}
}

// Run walks the replacements in order. For each it prints a prompt, reads a
// line and validates it, printing RetryMessage and reading again on a
// mismatch. If input ends, the answers gathered so far are returned with
// ErrInputClosed. Answers are checked as bare words; Play also uses the
// surrounding sentence.
func (p *Prompter) Run(ctx context.Context, replacements []blank.Replacement) ([]Answer, error) {
	answers := make([]Answer, 0, len(replacements))

	for _, r := range replacements {
		ans, err := p.ask(ctx, r, func(ctx context.Context, word string) (bool, error) {
			return p.Check(ctx, word, r.Short)
		})
		if err != nil {
			return answers, err
		}
		answers = append(answers, ans)
	}

	return answers, nil
}

// Play is Run over a whole puzzle: each answer is tagged inside its
// sentence, with earlier blanks holding the answers already given and later
// ones their original words.
func (p *Prompter) Play(ctx context.Context, puzzle *blank.Puzzle) ([]Answer, error) {
	answers := make([]Answer, 0, puzzle.Blanks())

	for i, r := range puzzle.Replacements {
		ans, err := p.ask(ctx, r, func(ctx context.Context, word string) (bool, error) {
			return p.CheckInContext(ctx, puzzle, answers, i, word)
		})
		if err != nil {
			return answers, err
		}
		answers = append(answers, ans)
	}

	return answers, nil
}

func (p *Prompter) ask(ctx context.Context, r blank.Replacement, check func(context.Context, string) (bool, error)) (Answer, error) {
	ans := Answer{}
	for {
		if err := ctx.Err(); err != nil {
			return ans, err
		}

		fmt.Fprint(p.Out, p.Question(r))
		line, err := p.readLine()
		if err != nil {
			return ans, err
		}
		ans.Attempts++

		ok, err := check(ctx, line)
		if err != nil {
			return ans, err
		}
		if ok {
			ans.Word = line
			ans.Accepted = true
			return ans, nil
		}

		if p.MaxAttempts > 0 && ans.Attempts >= p.MaxAttempts {
			fmt.Fprintln(p.Out, GiveUpMessage)
			ans.Word = r.Original
			return ans, nil
		}
		fmt.Fprintln(p.Out, RetryMessage)
	}
}

// Question is the prompt shown for a blank.
func (p *Prompter) Question(r blank.Replacement) string {
	if p.Verbose && r.Long != "" && r.Long != r.Short {
		return fmt.Sprintf("Give a %s (%s): ", r.Short, r.Long)
	}
	return fmt.Sprintf("Give a %s: ", r.Short)
}

// Check annotates word and compares the brief label of its first token
// with want. Blank input never matches.
func (p *Prompter) Check(ctx context.Context, word, want string) (bool, error) {
	if word == "" {
		return false, nil
	}
	doc, err := p.Annotator.Annotate(ctx, word)
	if err != nil {
		return false, fmt.Errorf("check %q: %w", word, err)
	}
	for _, tok := range doc.Tokens {
		if tok.POS == pos.SPACE {
			continue
		}
		return pos.Brief(tok.Tag) == want, nil
	}
	return false, nil
}

// CheckInContext places word in blank i of the puzzle's sentence and
// compares the brief label of the token found there with the blank's.
// answered fills the blanks before i. If that fails, the bare word is
// checked on its own.
func (p *Prompter) CheckInContext(ctx context.Context, puzzle *blank.Puzzle, answered []Answer, i int, word string) (bool, error) {
	if word == "" {
		return false, nil
	}
	want := puzzle.Replacements[i].Short

	before, after := surroundings(puzzle, answered, i)
	doc, err := p.Annotator.Annotate(ctx, before+word+after)
	if err != nil {
		return false, fmt.Errorf("check %q: %w", word, err)
	}
	if tok, ok := tokenAt(doc, len(before)); ok && pos.Brief(tok.Tag) == want {
		return true, nil
	}

	return p.Check(ctx, word, want)
}

// surroundings renders the sentence around blank i, split at the blank.
func surroundings(puzzle *blank.Puzzle, answered []Answer, i int) (before, after string) {
	var b, a strings.Builder
	target := &b
	for _, s := range puzzle.Segments {
		switch {
		case s.Blank < 0:
			target.WriteString(s.Text)
		case s.Blank == i:
			target = &a
		case s.Blank < len(answered):
			target.WriteString(answered[s.Blank].Word)
		default:
			target.WriteString(puzzle.Replacements[s.Blank].Original)
		}
	}
	return sentenceTail(b.String()), sentenceHead(a.String())
}

// sentenceTail drops everything up to the last sentence break in s.
func sentenceTail(s string) string {
	cut := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || isSentenceEnd(s, i) {
			cut = i + 1
		}
	}
	return strings.TrimLeftFunc(s[cut:], unicode.IsSpace)
}

// sentenceHead keeps s up to and including its first sentence break.
func sentenceHead(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
		if isSentenceEnd(s, i) {
			return s[:i+1]
		}
	}
	return s
}

func isSentenceEnd(s string, i int) bool {
	switch s[i] {
	case '.', '?', '!':
		return i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\n')
	}
	return false
}

// tokenAt returns the token starting at byte offset off of doc's text.
func tokenAt(doc annotate.Doc, off int) (annotate.Token, bool) {
	at := 0
	for _, tok := range doc.Tokens {
		if at == off {
			return tok, true
		}
		if at > off {
			break
		}
		at += len(tok.Text) + len(tok.Whitespace)
	}
	return annotate.Token{}, false
}

// readLine returns the next trimmed input line, however long.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", internalerr.ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}
