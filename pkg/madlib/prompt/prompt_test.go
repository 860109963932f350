package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/blank"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/pos"
)

var lexicon = annotate.NewLexicon(map[string]string{
	"dog":     "NN",
	"dogs":    "NNS",
	"ran":     "VBD",
	"jump":    "VB",
	"quickly": "RB",
	"london":  "NNP",
	"the":     "DT",
}, "FW")

var (
	noun = blank.Replacement{Short: "noun", Long: "noun, singular or mass", Original: "cat", Tag: "NN"}
	verb = blank.Replacement{Short: "verb", Long: "verb, past tense", Original: "sat", Tag: "VBD"}
)

type failingAnnotator struct{}

func (failingAnnotator) Annotate(context.Context, string) (annotate.Doc, error) {
	return annotate.Doc{}, internalerr.ErrAnnotator
}

func TestRunAcceptsMatchingAnswers(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("dog\nran\n"), &out, lexicon)

	answers, err := p.Run(context.Background(), []blank.Replacement{noun, verb})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %+v", answers)
	}
	for i, want := range []string{"dog", "ran"} {
		if answers[i].Word != want || !answers[i].Accepted || answers[i].Attempts != 1 {
			t.Errorf("answer %d = %+v", i, answers[i])
		}
	}
	if got := out.String(); got != "Give a noun: Give a verb: " {
		t.Errorf("output = %q", got)
	}
}

func TestRunRepromptsOnMismatch(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("quickly\n\nthe\ndogs\n"), &out, lexicon)

	answers, err := p.Run(context.Background(), []blank.Replacement{noun})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers[0].Word != "dogs" || answers[0].Attempts != 4 || !answers[0].Accepted {
		t.Errorf("answer = %+v", answers[0])
	}
	if n := strings.Count(out.String(), RetryMessage); n != 3 {
		t.Errorf("expected 3 retry messages, got %d in %q", n, out.String())
	}
	if n := strings.Count(out.String(), "Give a noun: "); n != 4 {
		t.Errorf("prompt should repeat without advancing, got %q", out.String())
	}
	if strings.Contains(out.String(), "verb") {
		t.Errorf("prompter advanced past the blank: %q", out.String())
	}
}

func TestRunGivesUpAfterMaxAttempts(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("quickly\nquickly\nran\n"), &out, lexicon)
	p.MaxAttempts = 2

	answers, err := p.Run(context.Background(), []blank.Replacement{noun, verb})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers[0].Accepted || answers[0].Word != "cat" || answers[0].Attempts != 2 {
		t.Errorf("first answer = %+v, want original word after giving up", answers[0])
	}
	if !answers[1].Accepted || answers[1].Word != "ran" {
		t.Errorf("second answer = %+v", answers[1])
	}
	if !strings.Contains(out.String(), GiveUpMessage) {
		t.Errorf("expected give-up message in %q", out.String())
	}
}

func TestRunUnboundedUntilInputCloses(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader(strings.Repeat("quickly\n", 50)), &out, lexicon)
	p.MaxAttempts = 0

	answers, err := p.Run(context.Background(), []blank.Replacement{noun})
	if !errors.Is(err, internalerr.ErrInputClosed) {
		t.Fatalf("error = %v, want ErrInputClosed", err)
	}
	if len(answers) != 0 {
		t.Errorf("no blank should be answered, got %+v", answers)
	}
	if n := strings.Count(out.String(), RetryMessage); n != 50 {
		t.Errorf("expected 50 retries, got %d", n)
	}
}

func TestRunInputClosedKeepsEarlierAnswers(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("dog\n"), &out, lexicon)

	answers, err := p.Run(context.Background(), []blank.Replacement{noun, verb})
	if !errors.Is(err, internalerr.ErrInputClosed) {
		t.Fatalf("error = %v, want ErrInputClosed", err)
	}
	if len(answers) != 1 || answers[0].Word != "dog" {
		t.Errorf("answers = %+v", answers)
	}
}

func TestRunAnnotatorFailure(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("dog\n"), &out, failingAnnotator{})

	_, err := p.Run(context.Background(), []blank.Replacement{noun})
	if !errors.Is(err, internalerr.ErrAnnotator) {
		t.Errorf("error = %v, want ErrAnnotator", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(strings.NewReader("dog\n"), &bytes.Buffer{}, lexicon)
	if _, err := p.Run(ctx, []blank.Replacement{noun}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunNoBlanks(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{}, lexicon)
	answers, err := p.Run(context.Background(), nil)
	if err != nil || len(answers) != 0 {
		t.Errorf("Run(nil) = %+v, %v", answers, err)
	}
}

func TestQuestionVerbose(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{}, lexicon)
	p.Verbose = true

	if got := p.Question(noun); got != "Give a noun (noun, singular or mass): " {
		t.Errorf("Question = %q", got)
	}
	adverb := blank.Replacement{Short: "adverb", Long: "adverb"}
	if got := p.Question(adverb); got != "Give a adverb: " {
		t.Errorf("Question = %q", got)
	}
}

func TestCheckProperNounAsNoun(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{}, lexicon)
	ok, err := p.Check(context.Background(), "London", "noun")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Error("NNP has brief label 'noun' and should be accepted")
	}
}

// modalAnnotator tags "run" as a verb only after "will", like a tagger that
// needs context to tell verbs from nouns.
type modalAnnotator struct{}

func (modalAnnotator) Annotate(ctx context.Context, text string) (annotate.Doc, error) {
	doc, err := lexicon.Annotate(ctx, text)
	if err != nil {
		return doc, err
	}
	for i := range doc.Tokens {
		if !strings.EqualFold(doc.Tokens[i].Text, "run") {
			continue
		}
		tag := "NN"
		if i > 0 && strings.EqualFold(doc.Tokens[i-1].Text, "will") {
			tag = "VB"
		}
		doc.Tokens[i].Tag = tag
		doc.Tokens[i].POS = pos.Universal(tag)
	}
	return doc, nil
}

func verbPuzzle(before, after string) *blank.Puzzle {
	return &blank.Puzzle{
		Segments: []blank.Segment{
			{Text: before, Blank: -1},
			{Blank: 0},
			{Text: after, Blank: -1},
		},
		Replacements: []blank.Replacement{
			{Short: "verb", Long: "verb, base form", Original: "go", Tag: "VB"},
		},
	}
}

func TestPlayChecksAnswerInSentence(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	p := New(strings.NewReader("run\n"), &out, modalAnnotator{})

	if ok, _ := p.Check(ctx, "run", "verb"); ok {
		t.Fatal("bare 'run' should not pass as a verb with this annotator")
	}

	answers, err := p.Play(ctx, verbPuzzle("Tomorrow they will ", " home."))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(answers) != 1 || !answers[0].Accepted || answers[0].Attempts != 1 {
		t.Errorf("answers = %+v, want 'run' accepted first time", answers)
	}
	if strings.Contains(out.String(), RetryMessage) {
		t.Errorf("unexpected retry: %q", out.String())
	}
}

func TestPlayFallsBackToBareWord(t *testing.T) {
	// "xran" is one token, so nothing starts at the blank's offset
	p := New(strings.NewReader("ran\n"), &bytes.Buffer{}, lexicon)
	answers, err := p.Play(context.Background(), verbPuzzle("x", ""))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !answers[0].Accepted || answers[0].Word != "ran" {
		t.Errorf("answer = %+v", answers[0])
	}
}

func TestSurroundingsUseEarlierAnswers(t *testing.T) {
	puzzle := &blank.Puzzle{
		Segments: []blank.Segment{
			{Text: "First one. The ", Blank: -1},
			{Blank: 0},
			{Text: " and ", Blank: -1},
			{Blank: 1},
			{Text: " ran. Next one.", Blank: -1},
		},
		Replacements: []blank.Replacement{{Original: "cat"}, {Original: "mouse"}},
	}

	before, after := surroundings(puzzle, []Answer{{Word: "dog"}}, 1)
	if before != "The dog and " || after != " ran." {
		t.Errorf("blank 1: before=%q after=%q", before, after)
	}

	before, after = surroundings(puzzle, nil, 0)
	if before != "The " || after != " and mouse ran." {
		t.Errorf("blank 0: before=%q after=%q", before, after)
	}
}

func TestRunLongLineIsJustAWrongAnswer(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	var out bytes.Buffer
	p := New(strings.NewReader(long+"\ndog\n"), &out, lexicon)

	answers, err := p.Run(context.Background(), []blank.Replacement{noun})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers[0].Word != "dog" || answers[0].Attempts != 2 {
		t.Errorf("answer = %+v", answers[0])
	}
	if !strings.Contains(out.String(), RetryMessage) {
		t.Errorf("long line should be rejected with a retry")
	}
}

func TestRunLastLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("dog"), &bytes.Buffer{}, lexicon)
	answers, err := p.Run(context.Background(), []blank.Replacement{noun})
	if err != nil || answers[0].Word != "dog" {
		t.Errorf("Run = %+v, %v", answers, err)
	}
}

func TestPlayVerbsThroughProse(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the tagger model")
	}

	tagger := annotate.NewProse()
	for _, word := range []string{"ran", "jumped"} {
		t.Run(word, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(word+"\n"), &out, tagger)
			p.MaxAttempts = 1

			answers, err := p.Play(context.Background(), verbPuzzle("The dog ", " to the park."))
			if err != nil {
				t.Fatalf("Play: %v", err)
			}
			if !answers[0].Accepted {
				t.Errorf("%q rejected as a verb: %q", word, out.String())
			}
		})
	}
}
