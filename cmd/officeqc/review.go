package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"github.com/johnChow-tech/office-files-quality-check/csv"
	"github.com/johnChow-tech/office-files-quality-check/exec"
	"github.com/johnChow-tech/office-files-quality-check/review"
)

// Run executes the review command: it collects every Urls_* link table
// under the links directory, in name order, and opens each first-seen URL
// once through the system browser.
func (c *ReviewCmd) Run(deps *Dependencies) error {
	tables, err := listLinkTables(c.Links)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Fprintf(deps.Stdout, "No link tables found in %s\n", c.Links)
		return nil
	}

	pacing, err := resolveDuration(c.Pacing, time.Duration(deps.Config.Pacing))
	if err != nil {
		return err
	}
	promptDelay, err := resolveDuration(c.PromptDelay, time.Duration(deps.Config.PromptDelay))
	if err != nil {
		return err
	}

	session := &review.Session{
		Reader:      csv.NewCollector(deps.Logger),
		Sink:        exec.NewOpener(),
		OutputDir:   c.Output,
		Pacing:      pacing,
		PromptDelay: promptDelay,
		Logger:      deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Reviewing %d link tables from %s\n", len(tables), c.Links)
	sources, err := session.Run(deps.Ctx, tables)
	if err != nil {
		return err
	}
	if sources == 0 {
		fmt.Fprintln(deps.Stdout, "No new links to review")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Opened links from %d source files\n", sources)
	return nil
}

// listLinkTables returns the Urls_* files of the links directory in name
// order.
func listLinkTables(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.ENOTFOUND, "cannot read links directory %s: %v", dir, err)
	}

	var tables []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "Urls_") {
			continue
		}
		tables = append(tables, filepath.Join(dir, e.Name()))
	}
	sort.Strings(tables)
	return tables, nil
}

// resolveDuration applies a flag override on top of the configured value.
func resolveDuration(flag string, configured time.Duration) (time.Duration, error) {
	if flag == "" {
		return configured, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, officeqc.Errorf(officeqc.EINVALID, "invalid duration %q: %v", flag, err)
	}
	return d, nil
}
