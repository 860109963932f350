package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cognicore/madlib/internal/logging"
	"github.com/cognicore/madlib/pkg/madlib/blank"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/store"
	"github.com/cognicore/madlib/pkg/madlib/store/sqlite"
)

type sessionJSON struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Source    string      `json:"source"`
	Row       int         `json:"row"`
	Field     string      `json:"field"`
	Template  string      `json:"template"`
	Score     int         `json:"score"`
	Blanks    []blankJSON `json:"blanks"`
}

type blankJSON struct {
	Short    string `json:"short"`
	Long     string `json:"long"`
	Original string `json:"original"`
	Answer   string `json:"answer"`
	Attempts int    `json:"attempts"`
	Accepted bool   `json:"accepted"`
}

type options struct {
	dbPath   string
	limit    int
	id       string
	asJSON   bool
	logLevel string
}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", "", "SQLite session database (required)")
	flag.IntVar(&opts.limit, "limit", 20, "Number of recent sessions to list")
	flag.StringVar(&opts.id, "id", "", "Show a single session")
	flag.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(opts.logLevel)

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		logger.Error("madlib-history stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, w io.Writer) error {
	if opts.dbPath == "" {
		return fmt.Errorf("%w: -db is required", internalerr.ErrInvalidConfig)
	}

	st, err := sqlite.Open(ctx, opts.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if opts.id != "" {
		return show(ctx, st, w, opts.id, opts.asJSON)
	}
	return list(ctx, st, w, opts.limit, opts.asJSON)
}

// list prints the newest sessions, one line each.
func list(ctx context.Context, st store.Store, w io.Writer, limit int, asJSON bool) error {
	sessions, err := st.ListSessions(ctx, limit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if asJSON {
		out := make([]sessionJSON, len(sessions))
		for i, s := range sessions {
			out[i] = toJSON(s)
		}
		return writeJSON(w, out)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "no sessions")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s  %d/%d  %s#%d\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Score(), len(s.Blanks), s.Source, s.Row)
	}
	return nil
}

// show prints one session with its answers.
func show(ctx context.Context, st store.Store, w io.Writer, id string, asJSON bool) error {
	s, found, err := st.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if !found {
		return fmt.Errorf("session %s: %w", id, internalerr.ErrNotFound)
	}

	if asJSON {
		return writeJSON(w, toJSON(s))
	}

	fmt.Fprintf(w, "Session %s (%s)\n", s.ID, s.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Source:   %s row %d (%s)\n", s.Source, s.Row, s.Field)
	fmt.Fprintf(w, "Template: %s\n", s.Template)
	fmt.Fprintf(w, "Score:    %d/%d\n", s.Score(), len(s.Blanks))
	for i, b := range s.Blanks {
		mark := "x"
		if b.Accepted {
			mark = "ok"
		}
		fmt.Fprintf(w, "  %2d. %-12s %-20s -> %-20s [%s, %d tries]\n",
			i+1, b.Short, b.Original, b.Answer, mark, b.Attempts)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w, fill(s))
	return nil
}

// fill substitutes each answer, or the original when unanswered, into the
// stored template.
func fill(s store.Session) string {
	var b strings.Builder
	rest := s.Template
	for _, bl := range s.Blanks {
		i := strings.Index(rest, blank.Marker)
		if i < 0 {
			break
		}
		word := bl.Answer
		if word == "" {
			word = bl.Original
		}
		b.WriteString(rest[:i])
		b.WriteString(word)
		rest = rest[i+len(blank.Marker):]
	}
	b.WriteString(rest)
	return b.String()
}

func toJSON(s store.Session) sessionJSON {
	out := sessionJSON{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Source:    s.Source,
		Row:       s.Row,
		Field:     s.Field,
		Template:  s.Template,
		Score:     s.Score(),
		Blanks:    make([]blankJSON, len(s.Blanks)),
	}
	for i, b := range s.Blanks {
		out.Blanks[i] = blankJSON(b)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
