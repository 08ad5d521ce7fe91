package etree

import (
	"archive/zip"
	"context"
	"log/slog"
	"strings"

	"github.com/beevik/etree"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

const (
	docxDocumentPart = "word/document.xml"
	docxRelsPart     = "word/_rels/document.xml.rels"
)

// Ensure DocxExtractor implements officeqc.Extractor at compile time.
var _ officeqc.Extractor = (*DocxExtractor)(nil)

// DocxExtractor extracts text and hyperlinks from narrative documents.
//
// The plain-text rendering is the top-level paragraph stream in document
// order, followed by every table rendered one row per line with cells
// joined by tabs. Tables never interleave with paragraph positions.
type DocxExtractor struct {
	logger *slog.Logger
}

// NewDocxExtractor creates a DocxExtractor.
func NewDocxExtractor(logger *slog.Logger) *DocxExtractor {
	return &DocxExtractor{logger: logger}
}

// Extract parses the .docx file at path.
func (e *DocxExtractor) Extract(ctx context.Context, path string) (*officeqc.ExtractedContent, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "open docx %s: %v", path, err)
	}
	defer zr.Close()

	doc, err := readPart(&zr.Reader, docxDocumentPart)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "docx %s: %s", path, officeqc.ErrorMessage(err))
	}
	rels, err := readRels(&zr.Reader, docxRelsPart)
	if err != nil {
		e.logger.Warn("docx relationships unreadable, hyperlinks skipped",
			"path", path, "error", err)
		rels = map[string]string{}
	}

	body := doc.Root().SelectElement("body")
	if body == nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "docx %s: missing document body", path)
	}

	content := &officeqc.ExtractedContent{}
	links := newLinkSet()

	for _, p := range body.SelectElements("p") {
		content.Lines = append(content.Lines, paragraphText(p))
		e.collectLinks(p, rels, links, path)
	}

	for _, tbl := range body.SelectElements("tbl") {
		for _, row := range tbl.SelectElements("tr") {
			var cells []string
			for _, tc := range row.SelectElements("tc") {
				var parts []string
				for _, cp := range tc.SelectElements("p") {
					if txt := paragraphText(cp); txt != "" {
						parts = append(parts, txt)
					}
				}
				cells = append(cells, strings.Join(parts, " "))
			}
			content.Lines = append(content.Lines, strings.Join(cells, "\t"))
		}
	}

	content.Links = links.records()
	return content, nil
}

// paragraphText concatenates the run text of a paragraph's direct runs.
// Text inside hyperlink wrappers is not part of the paragraph stream; it
// surfaces through the link records instead.
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, r := range p.SelectElements("r") {
		sb.WriteString(gatherText(r, "t"))
	}
	return sb.String()
}

// collectLinks walks a paragraph's hyperlink wrappers and records one
// link per contained run. A wrapper whose relationship cannot be
// resolved is skipped with a warning; the rest of the document is
// unaffected.
func (e *DocxExtractor) collectLinks(p *etree.Element, rels map[string]string, links *linkSet, path string) {
	for _, h := range p.SelectElements("hyperlink") {
		relID := attrValue(h, "id")
		if relID == "" {
			// Anchor-only hyperlink; internal, not a real link.
			continue
		}
		target, ok := rels[relID]
		if !ok {
			e.logger.Warn("docx hyperlink references unknown relationship",
				"path", path, "rel", relID)
			continue
		}
		for _, r := range h.SelectElements("r") {
			links.add(strings.TrimSpace(gatherText(r, "t")), target)
		}
	}
}
