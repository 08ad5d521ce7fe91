package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"github.com/johnChow-tech/office-files-quality-check/batch"
	"github.com/johnChow-tech/office-files-quality-check/etree"
	"github.com/johnChow-tech/office-files-quality-check/fs"
)

// Run executes the extract command: it enumerates office files in the
// source directory in name order and writes one batch of artifacts.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	files, err := listSourceFiles(c.Source)
	if err != nil {
		return err
	}

	writer := fs.NewWriter(c.Output, time.Now())
	runner := &batch.Runner{
		Extractors: etree.NewRegistry(deps.Logger),
		Writer:     writer,
		Logger:     deps.Logger,
	}
	job := batch.Job{SourceDir: c.Source, OutputDir: c.Output, Files: files}

	events := make(chan batch.ProgressEvent)
	g := &errgroup.Group{}
	g.Go(func() error {
		defer close(events)
		return runner.Run(deps.Ctx, job, func(ev batch.ProgressEvent) {
			events <- ev
		})
	})

	failed := 0
	for ev := range events {
		switch ev.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Extracting %d files from %s\n", ev.Total, c.Source)
		case batch.ProgressFile:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", ev.Processed, ev.Total, filepath.Base(ev.Path))
			if ev.Err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "\n%s: %s\n", filepath.Base(ev.Path), officeqc.ErrorMessage(ev.Err))
			}
		case batch.ProgressFinished:
			if ev.Total > 0 && ev.Err == nil {
				fmt.Fprintln(deps.Stdout)
			}
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d files, %d failed\n", len(files), failed)
	fmt.Fprintf(deps.Stdout, "  text:  %s\n", writer.TextDir())
	fmt.Fprintf(deps.Stdout, "  links: %s\n", writer.LinksDir())
	return nil
}

// listSourceFiles returns the regular files of the source directory in
// name order. Subdirectories are not descended into, and temporary office
// lock files (~$ prefix) are ignored.
func listSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.ENOTFOUND, "cannot read source directory %s: %v", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
