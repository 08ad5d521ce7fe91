package officeqc

import "context"

// LinkRecord is a (display text, target URL) pair found in a document.
// Both fields are non-empty; extractors discard incomplete pairs.
type LinkRecord struct {
	Text   string
	Target string
}

// LinkTableColumns is the fixed header row of persisted link tables.
// Column name matching is case-insensitive on read, fixed-case on write.
var LinkTableColumns = []string{"SourceFile", "LinkText", "URL"}

// ArtifactWriter persists one extraction job's derived corpora.
// Setup must be called once before writing; its failure is fatal to the
// job. Write failures are returned, never swallowed; the caller decides
// whether the batch continues.
type ArtifactWriter interface {
	// Setup creates the job's output directories. Idempotent.
	Setup() error

	// WriteText persists the plain-text artifact for a document and
	// returns its path.
	WriteText(doc SourceDocument, content *ExtractedContent) (string, error)

	// WriteLinks persists the link-table artifact for a document and
	// returns its path. Rows keep the extractor's post-dedup order.
	WriteLinks(doc SourceDocument, links []LinkRecord) (string, error)
}

// LinkTable is a persisted link table read back for review.
type LinkTable struct {
	// SourceFile is the original document name the table was built
	// from, taken from the table's Source-File column when present.
	SourceFile string

	// URLs holds the table's normalized URLs, deduplicated and sorted.
	URLs []string
}

// LinkTableReader reads a persisted link table into normalized records.
type LinkTableReader interface {
	// Read parses the table at path. A table without a URL column
	// yields an empty table, not an error.
	Read(path string) (*LinkTable, error)
}

// LinkSink presents a URL or local artifact path to a human, typically as
// a browser tab. Opens are fire-and-forget: callers log failures and
// continue.
type LinkSink interface {
	Open(ctx context.Context, target string) error
}
