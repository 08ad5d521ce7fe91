package officeqc

import (
	"context"
	"path/filepath"
	"strings"
)

// Kind identifies a supported document format.
type Kind string

// Supported document kinds.
const (
	KindUnsupported Kind = ""
	KindDocx        Kind = "docx" // narrative documents
	KindXlsx        Kind = "xlsx" // tabular workbooks (.xlsx and .xlsm)
	KindPptx        Kind = "pptx" // slide decks
)

// DetectKind returns the document kind for a file path based on its
// extension. Matching is case-insensitive. Unknown extensions map to
// KindUnsupported, which callers treat as a skip, not an error.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return KindDocx
	case ".xlsx", ".xlsm":
		return KindXlsx
	case ".pptx":
		return KindPptx
	default:
		return KindUnsupported
	}
}

// SourceDocument identifies one input file of an extraction job.
// It is immutable once built.
type SourceDocument struct {
	Path        string
	Kind        Kind
	DisplayName string // original file name, extension included
	BaseName    string // file name without the extension
	Ext         string // extension without the dot, lowercased
}

// NewSourceDocument builds a SourceDocument from a file path.
func NewSourceDocument(path string) SourceDocument {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return SourceDocument{
		Path:        path,
		Kind:        DetectKind(path),
		DisplayName: name,
		BaseName:    strings.TrimSuffix(name, ext),
		Ext:         strings.ToLower(strings.TrimPrefix(ext, ".")),
	}
}

// ExtractedContent is the result of extracting one document.
type ExtractedContent struct {
	// Lines is the plain-text rendering in document order.
	Lines []string

	// Links holds the document's hyperlinks, deduplicated by
	// (Text, Target) in first-seen document order.
	Links []LinkRecord
}

// Text returns the plain-text artifact body.
func (c *ExtractedContent) Text() string {
	return strings.Join(c.Lines, "\n")
}

// Extractor extracts plain text and hyperlinks from one document kind.
type Extractor interface {
	// Extract parses the document at path. It returns an EUNREADABLE
	// error if the file cannot be opened or parsed at all; a failure
	// confined to a single hyperlink is logged and skipped instead.
	Extract(ctx context.Context, path string) (*ExtractedContent, error)
}

// ExtractorRegistry maps document kinds to extractors.
type ExtractorRegistry interface {
	// Get returns the extractor for a kind, or nil if the kind is
	// not supported.
	Get(kind Kind) Extractor
}
