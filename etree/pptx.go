package etree

import (
	"archive/zip"
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

const (
	pptxPresentationPart = "ppt/presentation.xml"
	pptxRelsPart         = "ppt/_rels/presentation.xml.rels"
)

// Ensure PptxExtractor implements officeqc.Extractor at compile time.
var _ officeqc.Extractor = (*PptxExtractor)(nil)

// PptxExtractor extracts text and hyperlinks from slide decks.
//
// Slides are processed in presentation order, each preceded by a
// "--- Slide n ---" marker line. Only text-bearing shapes are visited and
// a paragraph is emitted only when its concatenated run text is non-empty
// after trimming.
type PptxExtractor struct {
	logger *slog.Logger
}

// NewPptxExtractor creates a PptxExtractor.
func NewPptxExtractor(logger *slog.Logger) *PptxExtractor {
	return &PptxExtractor{logger: logger}
}

// Extract parses the slide deck at path.
func (e *PptxExtractor) Extract(ctx context.Context, path string) (*officeqc.ExtractedContent, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "open deck %s: %v", path, err)
	}
	defer zr.Close()

	presentation, err := readPart(&zr.Reader, pptxPresentationPart)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "deck %s: %s", path, officeqc.ErrorMessage(err))
	}
	rels, err := readRels(&zr.Reader, pptxRelsPart)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "deck %s: %s", path, officeqc.ErrorMessage(err))
	}

	slideList := presentation.Root().SelectElement("sldIdLst")
	if slideList == nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "deck %s: missing slide list", path)
	}

	content := &officeqc.ExtractedContent{}
	links := newLinkSet()

	for i, sld := range slideList.SelectElements("sldId") {
		target, ok := rels[attrValue(sld, "id")]
		if !ok {
			e.logger.Warn("slide relationship missing, slide skipped",
				"path", path, "slide", i+1)
			continue
		}
		part := relPartName("ppt", target)

		content.Lines = append(content.Lines, "--- Slide "+strconv.Itoa(i+1)+" ---")
		if err := e.extractSlide(&zr.Reader, part, content, links); err != nil {
			return nil, officeqc.Errorf(officeqc.EUNREADABLE, "deck %s slide %d: %s",
				path, i+1, officeqc.ErrorMessage(err))
		}
	}

	content.Links = links.records()
	return content, nil
}

func (e *PptxExtractor) extractSlide(zr *zip.Reader, part string, content *officeqc.ExtractedContent, links *linkSet) error {
	doc, err := readPart(zr, part)
	if err != nil {
		return err
	}
	slideRels, err := readRels(zr, relsPartName(part))
	if err != nil {
		e.logger.Warn("slide relationships unreadable, hyperlinks skipped",
			"part", part, "error", err)
		slideRels = map[string]string{}
	}

	spTree := findShapeTree(doc.Root())
	if spTree == nil {
		return nil
	}

	for _, sp := range spTree.SelectElements("sp") {
		txBody := sp.SelectElement("txBody")
		if txBody == nil {
			continue
		}
		for _, p := range txBody.SelectElements("p") {
			var sb strings.Builder
			for _, r := range p.SelectElements("r") {
				text := gatherText(r, "t")
				sb.WriteString(text)
				e.collectRunLink(r, strings.TrimSpace(text), slideRels, links, part)
			}
			if line := sb.String(); strings.TrimSpace(line) != "" {
				content.Lines = append(content.Lines, line)
			}
		}
	}
	return nil
}

// collectRunLink records a hyperlink attached to a run's properties.
func (e *PptxExtractor) collectRunLink(r *etree.Element, text string, rels map[string]string, links *linkSet, part string) {
	rPr := r.SelectElement("rPr")
	if rPr == nil {
		return
	}
	click := rPr.SelectElement("hlinkClick")
	if click == nil {
		return
	}
	relID := attrValue(click, "id")
	if relID == "" {
		// Slide-jump or anchor action, not an external link.
		return
	}
	target, ok := rels[relID]
	if !ok {
		e.logger.Warn("slide hyperlink references unknown relationship",
			"part", part, "rel", relID)
		return
	}
	links.add(text, target)
}

// findShapeTree locates the slide's shape tree (sld → cSld → spTree).
func findShapeTree(root *etree.Element) *etree.Element {
	cSld := root.SelectElement("cSld")
	if cSld == nil {
		return nil
	}
	return cSld.SelectElement("spTree")
}
