// Package csv reads persisted link tables back into normalized URL
// records for review sessions.
package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// schemePrefixes are the URL schemes kept as-is during normalization.
var schemePrefixes = []string{"http://", "https://", "mailto:", "file:"}

// Ensure Collector implements officeqc.LinkTableReader at compile time.
var _ officeqc.LinkTableReader = (*Collector)(nil)

// Collector parses link-table artifacts. Header matching is
// case-insensitive and whitespace-trimmed, and a leading UTF-8 byte order
// mark is tolerated.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a Collector. If logger is nil, slog.Default() is
// used.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Read parses the link table at path. The resolved source file name is
// the Source-File column value of the first row that supplies one,
// falling back to the artifact's own file name. URLs are normalized,
// deduplicated, and sorted. A table without a URL column contributes
// zero records; that is a warning, not an error.
func (c *Collector) Read(path string) (*officeqc.LinkTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.ENOTFOUND, "open link table %s: %v", path, err)
	}
	defer f.Close()

	fallback := filepath.Base(path)

	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		c.logger.Warn("link table is empty or unreadable", "path", path, "error", err)
		return &officeqc.LinkTable{SourceFile: fallback}, nil
	}

	urlCol, srcCol := -1, -1
	for i, h := range header {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "URL":
			urlCol = i
		case "SOURCE FILE", "SOURCEFILE":
			srcCol = i
		}
	}
	if urlCol < 0 {
		c.logger.Warn("link table missing URL column", "path", path)
		return &officeqc.LinkTable{SourceFile: fallback}, nil
	}

	source := fallback
	sourceResolved := false
	seen := make(map[string]struct{})

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.logger.Warn("link table row unreadable, table skipped", "path", path, "error", err)
			return &officeqc.LinkTable{SourceFile: fallback}, nil
		}
		if urlCol < len(rec) {
			if u, ok := NormalizeURL(rec[urlCol]); ok {
				seen[u] = struct{}{}
			}
		}
		if !sourceResolved && srcCol >= 0 && srcCol < len(rec) && rec[srcCol] != "" {
			source = rec[srcCol]
			sourceResolved = true
		}
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	return &officeqc.LinkTable{SourceFile: source, URLs: urls}, nil
}

// NormalizeURL applies the row normalization rules: the raw value is
// trimmed; known scheme prefixes are kept as-is; a scheme-less value
// containing at least one dot gets https:// prepended; anything else is
// treated as an internal anchor and discarded. The second return value
// reports whether the value is link-like.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	lower := strings.ToLower(raw)
	for _, p := range schemePrefixes {
		if strings.HasPrefix(lower, p) {
			return raw, true
		}
	}
	if strings.Contains(raw, ".") {
		return "https://" + raw, true
	}
	return "", false
}
