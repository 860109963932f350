// Package match finds and samples part-of-speech runs in an annotated text.
package match

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
)

// Pattern matches runs of 1..Max consecutive tokens tagged POS.
type Pattern struct {
	ID  int
	POS string
	Max int
}

// Match is a half-open token span [Start, End) found by pattern PatternID.
type Match struct {
	PatternID int
	Start     int
	End       int
}

// Len returns the number of tokens covered.
func (m Match) Len() int { return m.End - m.Start }

// Find returns every span of consecutive tokens whose coarse tag equals
// p.POS with length between 1 and p.Max, ordered by start then end.
func Find(p Pattern, doc annotate.Doc) []Match {
	if p.Max < 1 {
		return nil
	}

	var matches []Match
	n := doc.Len()
	for start := 0; start < n; start++ {
		for end := start + 1; end <= n && end-start <= p.Max; end++ {
			if doc.Tokens[end-1].POS != p.POS {
				break
			}
			matches = append(matches, Match{PatternID: p.ID, Start: start, End: end})
		}
	}
	return matches
}

// SampleSize is ceil(ratio × n), clamped to [0, n]. The product is rounded
// to 12 significant digits first so 0.1×30 counts as 3, not 4.
func SampleSize(ratio float64, n int) int {
	if n <= 0 || ratio <= 0 {
		return 0
	}
	x, err := strconv.ParseFloat(strconv.FormatFloat(ratio*float64(n), 'g', 12, 64), 64)
	if err != nil {
		x = ratio * float64(n)
	}
	k := int(math.Ceil(x))
	return min(max(k, 0), n)
}

// Select runs every pattern against doc, samples SampleSize(ratio, found)
// matches per pattern without replacement, and returns the merged matches
// sorted by start with one match per start position.
func Select(patterns []Pattern, doc annotate.Doc, ratio float64, rng *rand.Rand) ([]Match, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("%w: ratio %v outside (0,1]", internalerr.ErrInvalidInput, ratio)
	}

	var selected []Match
	for _, p := range patterns {
		found := Find(p, doc)
		k := SampleSize(ratio, len(found))
		if k == 0 {
			continue
		}
		selected = append(selected, sample(found, k, rng)...)
	}

	return Normalize(selected), nil
}

// Normalize sorts matches by start (then end, then pattern) and keeps the
// first match for each start position.
func Normalize(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.PatternID < b.PatternID
	})

	out := matches[:0]
	for i, m := range matches {
		if i > 0 && m.Start == out[len(out)-1].Start {
			continue
		}
		out = append(out, m)
	}
	return out
}

// sample picks k of matches uniformly without replacement (partial
// Fisher-Yates on a copy).
func sample(matches []Match, k int, rng *rand.Rand) []Match {
	pool := append([]Match(nil), matches...)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
