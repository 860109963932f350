package blank

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/match"
	"github.com/cognicore/madlib/pkg/madlib/pos"
)

var testLexicon = annotate.NewLexicon(map[string]string{
	"the":   "DT",
	"a":     "DT",
	"cat":   "NN",
	"mat":   "NN",
	"dogs":  "NNS",
	"sat":   "VBD",
	"bark":  "VBP",
	"on":    "IN",
	"loud":  "JJ",
	"why":   "WRB",
	"never": "RB",
}, "NNP")

func annotateText(t *testing.T, text string) annotate.Doc {
	t.Helper()
	doc, err := testLexicon.Annotate(context.Background(), text)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	return doc
}

func TestBuildSingleBlank(t *testing.T) {
	doc := annotateText(t, "The cat sat.")
	p, err := Build(doc, []match.Match{{Start: 1, End: 2}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := p.Template(Marker); got != "The {} sat." {
		t.Errorf("Template = %q", got)
	}
	if got := p.Brief(); got != "The noun sat." {
		t.Errorf("Brief = %q", got)
	}
	if got := p.Verbose(); got != "The noun, singular or mass sat." {
		t.Errorf("Verbose = %q", got)
	}
	want := Replacement{Short: "noun", Long: "noun, singular or mass", Original: "cat", Tag: "NN"}
	if p.Blanks() != 1 || p.Replacements[0] != want {
		t.Errorf("Replacements = %+v, want [%+v]", p.Replacements, want)
	}
}

func TestBuildAdjacentAndEdgeBlanks(t *testing.T) {
	doc := annotateText(t, "Dogs bark loud")
	p, err := Build(doc, []match.Match{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := p.Template("_"); got != "_ _ _" {
		t.Errorf("Template = %q", got)
	}
	if got := p.Original(); got != "Dogs bark loud" {
		t.Errorf("Original = %q", got)
	}
}

func TestBuildMultiTokenMatchBlanksFirstToken(t *testing.T) {
	doc := annotateText(t, "Big Apple dogs bark")
	p, err := Build(doc, []match.Match{{Start: 0, End: 2}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := p.Template(Marker); got != "{} Apple dogs bark" {
		t.Errorf("Template = %q", got)
	}
}

func TestBuildNoMatches(t *testing.T) {
	text := "The cat sat on the mat."
	p, err := Build(annotateText(t, text), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Blanks() != 0 || p.Template(Marker) != text {
		t.Errorf("expected untouched text, got %q", p.Template(Marker))
	}
}

func TestBuildRejectsUnsorted(t *testing.T) {
	doc := annotateText(t, "The cat sat.")
	tests := [][]match.Match{
		{{Start: 2, End: 3}, {Start: 1, End: 2}},
		{{Start: 1, End: 2}, {Start: 1, End: 2}},
		{{Start: 9, End: 10}},
		{{Start: 1, End: 1}},
	}
	for _, matches := range tests {
		_, err := Build(doc, matches)
		if !errors.Is(err, internalerr.ErrInvalidMatches) {
			t.Errorf("Build(%+v) error = %v, want ErrInvalidMatches", matches, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"The cat sat on the mat.",
		"  Why   never a cat?\n\nDogs bark, loud!  ",
		"Never.",
		"",
	}
	patterns := []match.Pattern{
		{ID: 0, POS: pos.NOUN, Max: 3},
		{ID: 1, POS: pos.PROPN, Max: 3},
		{ID: 2, POS: pos.VERB, Max: 2},
		{ID: 3, POS: pos.ADV, Max: 2},
		{ID: 4, POS: pos.PUNCT, Max: 2},
	}

	for _, text := range texts {
		doc := annotateText(t, text)
		for seed := uint64(0); seed < 10; seed++ {
			rng := rand.New(rand.NewPCG(seed, 1))
			matches, err := match.Select(patterns, doc, 0.6, rng)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			p, err := Build(doc, matches)
			if err != nil {
				t.Fatalf("Build(%q): %v", text, err)
			}
			if got := p.Original(); got != text {
				t.Fatalf("round trip of %q = %q", text, got)
			}
			if strings.Count(p.Template("\x00"), "\x00") != p.Blanks() {
				t.Fatalf("template has wrong number of markers")
			}
		}
	}
}

func TestFill(t *testing.T) {
	doc := annotateText(t, "The cat sat on the mat.")
	p, err := Build(doc, []match.Match{{Start: 1, End: 2}, {Start: 5, End: 6}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := p.Fill([]string{"dog", "sofa"}); got != "The dog sat on the sofa." {
		t.Errorf("Fill = %q", got)
	}
	if got := p.Fill([]string{"dog"}); got != "The dog sat on the mat." {
		t.Errorf("partial Fill = %q", got)
	}
	if got := p.Hints(false); len(got) != 2 || got[0] != "noun" {
		t.Errorf("Hints = %v", got)
	}
}

func TestBreakLines(t *testing.T) {
	got := BreakLines("One. Two? Three.")
	if got != "One.\nTwo?\nThree." {
		t.Errorf("BreakLines = %q", got)
	}
}
