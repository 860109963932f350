package annotate

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/madlib/pkg/madlib/internalerr"
)

// Prose annotates text with the prose averaged-perceptron tagger.
type Prose struct{}

// NewProse returns the default prose-backed annotator.
func NewProse() *Prose {
	return &Prose{}
}

// Annotate implements Annotator.
func (p *Prose) Annotate(ctx context.Context, text string) (Doc, error) {
	if err := ctx.Err(); err != nil {
		return Doc{}, err
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return Doc{}, fmt.Errorf("%w: prose: %v", internalerr.ErrAnnotator, err)
	}

	tokens := doc.Tokens()
	words := make([]Word, len(tokens))
	for i, tok := range tokens {
		words[i] = Word{Text: tok.Text, Tag: tok.Tag}
	}

	return Align(text, words), nil
}
