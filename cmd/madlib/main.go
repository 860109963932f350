package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cognicore/madlib/internal/logging"
	"github.com/cognicore/madlib/pkg/madlib"
	"github.com/cognicore/madlib/pkg/madlib/annotate"
	"github.com/cognicore/madlib/pkg/madlib/blank"
	"github.com/cognicore/madlib/pkg/madlib/config"
	"github.com/cognicore/madlib/pkg/madlib/corpus"
	"github.com/cognicore/madlib/pkg/madlib/internalerr"
	"github.com/cognicore/madlib/pkg/madlib/prompt"
	"github.com/cognicore/madlib/pkg/madlib/report"
	"github.com/cognicore/madlib/pkg/madlib/store"
	"github.com/cognicore/madlib/pkg/madlib/store/sqlite"
)

// options are the command-line flags; empty values leave the config alone.
type options struct {
	verbose    bool
	configPath string
	envFile    string
	corpusPath string
	outPath    string
	dbPath     string
	seed       uint64
	logLevel   string
}

func main() {
	var opts options
	flag.BoolVar(&opts.verbose, "v", false, "Verbose. Switch between brief and verbose hints for each blank")
	flag.BoolVar(&opts.verbose, "verbose", false, "Verbose. Switch between brief and verbose hints for each blank")
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (optional)")
	flag.StringVar(&opts.envFile, "env", ".env", "dotenv file with MADLIB_* overrides (optional)")
	flag.StringVar(&opts.corpusPath, "corpus", "", "Corpus CSV/JSONL (overrides config)")
	flag.StringVar(&opts.outPath, "out", "", "Report file (overrides config)")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite session database (optional)")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 = time-based)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(opts.logLevel)

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	g := game{
		cfg:       cfg,
		annotator: annotate.NewProse(),
		in:        os.Stdin,
		out:       os.Stdout,
		logger:    logger,
		now:       time.Now,
	}
	if err := g.run(context.Background()); err != nil {
		logger.Error("madlib stopped", "error", err)
		os.Exit(1)
	}
}

// loadConfig layers flags over the YAML file and the environment.
func loadConfig(opts options) (config.Config, error) {
	loader := config.Loader{Path: opts.configPath, EnvFile: opts.envFile}
	cfg, err := loader.Load()
	if err != nil {
		return config.Config{}, err
	}

	if opts.verbose {
		cfg.Prompt.Verbose = true
	}
	if opts.corpusPath != "" {
		cfg.Corpus.Path = opts.corpusPath
	}
	if opts.outPath != "" {
		cfg.Output.Path = opts.outPath
	}
	if opts.dbPath != "" {
		cfg.Store.Path = opts.dbPath
	}
	if opts.seed != 0 {
		cfg.Sampling.Seed = opts.seed
	}

	return cfg, cfg.Validate()
}

// game is one interactive run.
type game struct {
	cfg       config.Config
	annotator annotate.Annotator
	in        io.Reader
	out       io.Writer
	logger    *slog.Logger
	now       func() time.Time
}

func (g *game) run(ctx context.Context) error {
	var st store.Store
	if g.cfg.Store.Path != "" {
		var err error
		st, err = sqlite.Open(ctx, g.cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	corp, err := corpus.Load(g.cfg.Corpus.Path, corpus.Options{Logger: g.logger})
	if err != nil {
		return err
	}
	g.logger.Debug("corpus loaded", "path", corp.Path, "rows", corp.Len())

	engine := madlib.New(madlib.Options{
		Annotator: g.annotator,
		Blacklist: g.cfg.BlacklistSet(),
		Ratio:     g.cfg.Sampling.Ratio,
		Rand:      madlib.NewRand(g.cfg.Sampling.Seed),
	})

	sample, res, err := g.draw(ctx, engine, corp)
	if err != nil {
		return err
	}

	if err := report.Write(g.cfg.Output.Path, res.Puzzle, report.Options{BreakLines: g.cfg.Output.BreakLines}); err != nil {
		return err
	}
	g.logger.Debug("report written", "path", g.cfg.Output.Path, "blanks", res.Puzzle.Blanks())

	fmt.Fprintln(g.out, g.display(res.Puzzle))
	fmt.Fprintln(g.out)

	p := prompt.New(g.in, g.out, g.annotator)
	p.MaxAttempts = g.cfg.Prompt.MaxAttempts
	p.Verbose = g.cfg.Prompt.Verbose

	answers, runErr := p.Play(ctx, res.Puzzle)
	if runErr != nil && !errors.Is(runErr, internalerr.ErrInputClosed) {
		return runErr
	}

	if runErr == nil {
		fmt.Fprintln(g.out)
		fmt.Fprintln(g.out, g.lines(res.Puzzle.Fill(madlib.Words(answers))))
	} else {
		g.logger.Warn("input closed before every blank was filled",
			"answered", len(answers), "blanks", res.Puzzle.Blanks())
	}

	if st != nil {
		at := g.now()
		origin := madlib.Origin{Source: corp.Path, Row: sample.Row, Field: g.cfg.Corpus.Field}
		sess := madlib.NewSession(store.NewIDs().New(at), at, origin, res.Puzzle, answers)
		if err := st.SaveSession(ctx, sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		g.logger.Info("session saved", "id", sess.ID, "score", sess.Score())
	}

	return nil
}

// draw picks rows until one yields at least one blank.
func (g *game) draw(ctx context.Context, engine *madlib.Madlib, corp *corpus.Corpus) (corpus.Sample, *madlib.Result, error) {
	field := g.cfg.Field()

	var lastErr error
	for i := 0; i < g.cfg.Draws; i++ {
		sample, err := corp.Pick(engine.Rand())
		if err != nil {
			return corpus.Sample{}, nil, err
		}

		text := sample.Text(field)
		if g.cfg.Corpus.Clean {
			text = corpus.Clean(text)
		}

		res, err := engine.Generate(ctx, text)
		switch {
		case err == nil:
			g.logger.Debug("sample chosen", "row", sample.Row, "tokens", res.Doc.Len(), "patterns", len(res.Patterns))
			return sample, res, nil
		case errors.Is(err, internalerr.ErrNoBlanks), errors.Is(err, internalerr.ErrInvalidInput):
			g.logger.Warn("sample skipped", "row", sample.Row, "error", err)
			lastErr = err
		default:
			return corpus.Sample{}, nil, err
		}
	}

	return corpus.Sample{}, nil, fmt.Errorf("no usable sample after %d draws: %w", g.cfg.Draws, lastErr)
}

func (g *game) display(p *blank.Puzzle) string {
	if g.cfg.Prompt.Verbose {
		return g.lines(p.Verbose())
	}
	return g.lines(p.Brief())
}

func (g *game) lines(s string) string {
	if g.cfg.Output.BreakLines {
		return blank.BreakLines(s)
	}
	return s
}
