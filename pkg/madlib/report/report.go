// Package report writes the madlib output file.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/madlib/pkg/madlib/blank"
)

// Separator is the line between report sections.
const Separator = "*******************"

// Options controls report formatting.
type Options struct {
	BreakLines bool // put each sentence on its own line
}

// Format renders the four report sections: the replacement list, the
// template, the template filled with short tags, and the template filled
// with long tags.
func Format(p *blank.Puzzle, opts Options) string {
	sections := []string{
		Replacements(p.Replacements),
		p.Template(blank.Marker),
		p.Brief(),
		p.Verbose(),
	}
	if opts.BreakLines {
		for i := 1; i < len(sections); i++ {
			sections[i] = blank.BreakLines(sections[i])
		}
	}
	return strings.Join(sections, "\n"+Separator+"\n")
}

// Write overwrites path with the formatted report.
func Write(path string, p *blank.Puzzle, opts Options) error {
	if err := os.WriteFile(path, []byte(Format(p, opts)), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Replacements lists (short, long) pairs, e.g. [('noun', 'noun, plural')].
func Replacements(rs []blank.Replacement) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("(%s, %s)", quote(r.Short), quote(r.Long))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
