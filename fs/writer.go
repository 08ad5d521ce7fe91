// Package fs provides file-based persistence for extraction artifacts.
//
// Each extraction job writes into a pair of timestamp-named directories
// under the job's output directory, so repeated runs never collide with
// or corrupt prior outputs. Timestamps have second granularity; two jobs
// started within the same second share a layout (known limitation).
package fs

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

// TimestampFormat names job and session output directories.
const TimestampFormat = "20060102150405"

// Ensure Writer implements officeqc.ArtifactWriter at compile time.
var _ officeqc.ArtifactWriter = (*Writer)(nil)

// Writer persists plain-text and link-table artifacts for one job.
type Writer struct {
	textDir  string
	linksDir string
}

// NewWriter creates a Writer rooted at outputDir. The directory names
// carry the given start time; call Setup before writing.
func NewWriter(outputDir string, start time.Time) *Writer {
	ts := start.Format(TimestampFormat)
	return &Writer{
		textDir:  filepath.Join(outputDir, "PlainText_"+ts),
		linksDir: filepath.Join(outputDir, "HyperLinks_"+ts),
	}
}

// TextDir returns the plain-text output directory.
func (w *Writer) TextDir() string { return w.textDir }

// LinksDir returns the link-table output directory.
func (w *Writer) LinksDir() string { return w.linksDir }

// Setup creates both output directories. Idempotent; failure is fatal to
// the job.
func (w *Writer) Setup() error {
	for _, dir := range []string{w.textDir, w.linksDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return officeqc.Errorf(officeqc.EINTERNAL, "create output directory %s: %v", dir, err)
		}
	}
	return nil
}

// TextArtifactName returns the deterministic plain-text artifact name for
// a document, e.g. report.docx → PlainText_report_docx.md.
func TextArtifactName(doc officeqc.SourceDocument) string {
	return fmt.Sprintf("PlainText_%s_%s.md", doc.BaseName, doc.Ext)
}

// LinkArtifactName returns the deterministic link-table artifact name for
// a document, e.g. report.docx → Urls_report_docx.dat.
func LinkArtifactName(doc officeqc.SourceDocument) string {
	return fmt.Sprintf("Urls_%s_%s.dat", doc.BaseName, doc.Ext)
}

// WriteText persists the plain-text artifact as UTF-8, overwriting any
// previous artifact of the same name.
func (w *Writer) WriteText(doc officeqc.SourceDocument, content *officeqc.ExtractedContent) (string, error) {
	path := filepath.Join(w.textDir, TextArtifactName(doc))
	if err := os.WriteFile(path, []byte(content.Text()), 0644); err != nil {
		return "", fmt.Errorf("write text artifact %s: %w", path, err)
	}
	return path, nil
}

// WriteLinks persists the link table as CSV with the fixed header row.
// The SourceFile column always carries the original file name, and data
// rows keep the extractor's post-dedup order.
func (w *Writer) WriteLinks(doc officeqc.SourceDocument, links []officeqc.LinkRecord) (string, error) {
	path := filepath.Join(w.linksDir, LinkArtifactName(doc))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create link table %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(officeqc.LinkTableColumns); err != nil {
		f.Close()
		return "", fmt.Errorf("write link table header %s: %w", path, err)
	}
	for _, l := range links {
		if err := cw.Write([]string{doc.DisplayName, l.Text, l.Target}); err != nil {
			f.Close()
			return "", fmt.Errorf("write link table row %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush link table %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close link table %s: %w", path, err)
	}
	return path, nil
}
