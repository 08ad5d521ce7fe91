package review

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"golang.org/x/time/rate"
)

// Default pacing between link opens and dwell time after a confirmation
// page. The pacing is a throttle for the downstream browser, not an
// ordering mechanism; ordering is guaranteed by the single-pass
// algorithm.
const (
	DefaultPacing      = 500 * time.Millisecond
	DefaultPromptDelay = time.Second
)

// Group is one source file's batch of first-seen URLs, in collector
// order. Only files that contributed at least one new URL form a group.
type Group struct {
	SourceFile string
	URLs       []string
}

// Session drives one review pass over a set of link tables. Each run
// deduplicates URLs across all tables, writes one confirmation artifact
// per contributing source file into a fresh timestamp-named directory,
// and exposes artifacts and links to the sink in order.
//
// Sessions share no state: running the same tables through two sessions
// opens the full set both times.
type Session struct {
	Reader officeqc.LinkTableReader
	Sink   officeqc.LinkSink

	// OutputDir is the base directory for confirmation artifacts.
	OutputDir string

	// Pacing is the delay between link opens; PromptDelay is the dwell
	// after a confirmation page. Zero values use the defaults.
	Pacing      time.Duration
	PromptDelay time.Duration

	Logger *slog.Logger
}

// Run processes the link tables in the given order and returns the number
// of source files that contributed at least one first-seen URL. When no
// table contributes a new URL nothing is created or opened.
func (s *Session) Run(ctx context.Context, tables []string) (int, error) {
	if s.Reader == nil || s.Sink == nil || s.OutputDir == "" {
		return 0, officeqc.Errorf(officeqc.EINVALID, "review session requires a reader, a sink, and an output directory")
	}
	logger := s.logger().With("session", uuid.New().String())

	registry := NewRegistry(uint(len(tables)) * 64)
	var groups []Group

	for _, path := range tables {
		table, err := s.Reader.Read(path)
		if err != nil {
			logger.Warn("link table unreadable, skipped", "table", path, "error", err)
			continue
		}

		var fresh []string
		for _, u := range table.URLs {
			if registry.Add(u) {
				fresh = append(fresh, u)
			}
		}
		logger.Info("link table collected",
			"table", filepath.Base(path), "links", len(table.URLs), "new", len(fresh))

		if len(fresh) > 0 {
			groups = append(groups, Group{SourceFile: table.SourceFile, URLs: fresh})
		}
	}

	if registry.Len() == 0 {
		logger.Info("no new links to review")
		return 0, nil
	}

	promptDir := filepath.Join(s.OutputDir, "temp_html_"+time.Now().Format("20060102150405"))
	if err := os.MkdirAll(promptDir, 0755); err != nil {
		return 0, officeqc.Errorf(officeqc.EINTERNAL, "create review directory %s: %v", promptDir, err)
	}

	limiter := rate.NewLimiter(rate.Every(s.pacing()), 1)

	for i, g := range groups {
		logger.Info("reviewing source file",
			"n", i+1, "of", len(groups), "source", g.SourceFile, "new", len(g.URLs))

		if path, err := writePrompt(promptDir, g); err != nil {
			logger.Error("cannot create confirmation page", "source", g.SourceFile, "error", err)
		} else {
			if err := s.Sink.Open(ctx, "file://"+path); err != nil {
				logger.Warn("cannot open confirmation page", "path", path, "error", err)
			}
			time.Sleep(s.promptDelay())
		}

		for _, u := range g.URLs {
			if err := limiter.Wait(ctx); err != nil {
				return i, err
			}
			if err := s.Sink.Open(ctx, u); err != nil {
				logger.Warn("cannot open link", "url", u, "error", err)
			}
		}
	}

	logger.Info("review session finished",
		"sources", len(groups), "unique_links", registry.Len())
	return len(groups), nil
}

func (s *Session) pacing() time.Duration {
	if s.Pacing > 0 {
		return s.Pacing
	}
	return DefaultPacing
}

func (s *Session) promptDelay() time.Duration {
	if s.PromptDelay > 0 {
		return s.PromptDelay
	}
	return DefaultPromptDelay
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
