// Package batch provides the extraction orchestrator. It drives the
// format dispatcher and the artifact writer over an ordered file set,
// isolating per-file and per-artifact failures so one bad document never
// stops the batch.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types, in the order they occur within a job.
const (
	// ProgressStarted is emitted once before any file is processed.
	ProgressStarted ProgressType = iota
	// ProgressFile is emitted once after each file, whether it was
	// extracted, skipped, or failed.
	ProgressFile
	// ProgressFinished is emitted exactly once per job, after all
	// files or on a fatal setup failure.
	ProgressFinished
)

// ProgressEvent reports progress during an extraction job.
type ProgressEvent struct {
	Type      ProgressType
	Processed int
	Total     int

	// Path is the file the event refers to (ProgressFile only).
	Path string

	// Err carries the file's extraction error on ProgressFile events,
	// or the fatal setup error on a ProgressFinished event.
	Err error
}

// ProgressFunc is a callback for reporting job progress. The runner makes
// no assumption about which goroutine consumes it; marshaling onto a
// particular execution context is the caller's responsibility.
type ProgressFunc func(event ProgressEvent)

// Job describes one extraction invocation. Files are processed in the
// supplied order.
type Job struct {
	SourceDir string
	OutputDir string
	Files     []string
}

// Runner orchestrates extraction jobs.
type Runner struct {
	Extractors officeqc.ExtractorRegistry
	Writer     officeqc.ArtifactWriter
	Logger     *slog.Logger
}

// Run executes a job. Only a setup failure aborts the job and is
// returned; per-file and per-artifact failures are logged, surfaced on
// their ProgressFile event, and never stop the batch. The terminal
// ProgressFinished event fires exactly once per job, even when setup
// fails and even when the job has no files.
func (r *Runner) Run(ctx context.Context, job Job, progress ProgressFunc) error {
	logger := r.logger().With("job", uuid.New().String())

	emit := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	total := len(job.Files)

	if r.Extractors == nil || r.Writer == nil || job.OutputDir == "" {
		err := officeqc.Errorf(officeqc.EINVALID, "extraction job requires extractors, a writer, and an output directory")
		emit(ProgressEvent{Type: ProgressFinished, Total: total, Err: err})
		return err
	}

	logger.Info("extraction job starting",
		"source", job.SourceDir, "output", job.OutputDir, "files", total)

	if err := r.Writer.Setup(); err != nil {
		err = fmt.Errorf("output directory setup: %w", err)
		logger.Error("fatal: cannot create output directories", "error", err)
		emit(ProgressEvent{Type: ProgressFinished, Total: total, Err: err})
		return err
	}

	emit(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, path := range job.Files {
		fileErr := r.processFile(ctx, logger, path)
		emit(ProgressEvent{Type: ProgressFile, Processed: i + 1, Total: total, Path: path, Err: fileErr})
	}

	logger.Info("extraction job finished", "processed", total)
	emit(ProgressEvent{Type: ProgressFinished, Processed: total, Total: total})
	return nil
}

// processFile extracts one document and persists its artifacts. The text
// and link writes are independent: a failure in either is logged and
// does not prevent the other.
func (r *Runner) processFile(ctx context.Context, logger *slog.Logger, path string) error {
	doc := officeqc.NewSourceDocument(path)
	logger = logger.With("file", doc.DisplayName)

	extractor := r.Extractors.Get(doc.Kind)
	if extractor == nil {
		logger.Info("skipping unsupported file type", "ext", doc.Ext)
		return nil
	}

	content, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("document extraction failed", "error", err)
		return err
	}

	if text := content.Text(); text != "" {
		if p, err := r.Writer.WriteText(doc, content); err != nil {
			logger.Error("cannot write text artifact", "error", err)
		} else {
			logger.Debug("text artifact written", "path", p, "hash", contentHash(text))
		}
	}
	if len(content.Links) > 0 {
		if p, err := r.Writer.WriteLinks(doc, content.Links); err != nil {
			logger.Error("cannot write link table", "error", err)
		} else {
			logger.Debug("link table written", "path", p, "links", len(content.Links))
		}
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// contentHash returns a short xxhash fingerprint of artifact content,
// used to correlate artifacts across runs in logs.
func contentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
