// Package stats counts part-of-speech tags and turns the counts into match
// patterns.
package stats

import (
	"sort"

	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/blacklist"
	"github.com/cognicore/madlib/pkg/madlib/match"
	"github.com/cognicore/madlib/pkg/madlib/pos"
)

// Stat is the number of tokens carrying one coarse tag.
type Stat struct {
	POS   string
	Count int
	Long  string // pos.Explain(POS); empty if unknown
}

// Build counts the coarse tags in doc. The result is sorted by tag.
func Build(doc annotate.Doc) []Stat {
	counts := make(map[string]int)
	for _, tok := range doc.Tokens {
		counts[tok.POS]++
	}

	result := make([]Stat, 0, len(counts))
	for tag, n := range counts {
		result = append(result, Stat{POS: tag, Count: n, Long: pos.Explain(tag)})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].POS < result[j].POS
	})

	return result
}

// Patterns builds one pattern per statistic whose long tag is not
// blacklisted, in statistics order. Max is the statistic's count. Tags with
// no answerable label (unknown text, whitespace) never get a pattern.
func Patterns(stats []Stat, bl *blacklist.Set) []match.Pattern {
	patterns := make([]match.Pattern, 0, len(stats))
	for _, s := range stats {
		if bl.Contains(s.Long) || s.Count < 1 || !pos.Answerable(s.POS) {
			continue
		}
		patterns = append(patterns, match.Pattern{
			ID:  len(patterns),
			POS: s.POS,
			Max: s.Count,
		})
	}
	return patterns
}

// Total returns the number of tokens counted in stats.
func Total(stats []Stat) int {
	n := 0
	for _, s := range stats {
		n += s.Count
	}
	return n
}
