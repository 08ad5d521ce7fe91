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
	xlsxWorkbookPart = "xl/workbook.xml"
	xlsxRelsPart     = "xl/_rels/workbook.xml.rels"
	xlsxSharedPart   = "xl/sharedStrings.xml"
)

// Ensure XlsxExtractor implements officeqc.Extractor at compile time.
var _ officeqc.Extractor = (*XlsxExtractor)(nil)

// XlsxExtractor extracts text and hyperlinks from tabular workbooks
// (.xlsx and .xlsm).
//
// Worksheets are processed in declared order, each preceded by a
// "--- Sheet: name ---" marker line. Only rows with at least one
// non-empty cell are emitted; cells are joined by tabs and empty cells
// render as empty strings.
type XlsxExtractor struct {
	logger *slog.Logger
}

// NewXlsxExtractor creates an XlsxExtractor.
func NewXlsxExtractor(logger *slog.Logger) *XlsxExtractor {
	return &XlsxExtractor{logger: logger}
}

// Extract parses the workbook at path.
func (e *XlsxExtractor) Extract(ctx context.Context, path string) (*officeqc.ExtractedContent, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "open workbook %s: %v", path, err)
	}
	defer zr.Close()

	workbook, err := readPart(&zr.Reader, xlsxWorkbookPart)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "workbook %s: %s", path, officeqc.ErrorMessage(err))
	}
	rels, err := readRels(&zr.Reader, xlsxRelsPart)
	if err != nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "workbook %s: %s", path, officeqc.ErrorMessage(err))
	}
	shared := e.sharedStrings(&zr.Reader, path)

	sheetsEl := workbook.Root().SelectElement("sheets")
	if sheetsEl == nil {
		return nil, officeqc.Errorf(officeqc.EUNREADABLE, "workbook %s: missing sheet list", path)
	}

	content := &officeqc.ExtractedContent{}
	links := newLinkSet()

	for _, sheet := range sheetsEl.SelectElements("sheet") {
		name := attrValue(sheet, "name")
		target, ok := rels[attrValue(sheet, "id")]
		if !ok {
			e.logger.Warn("worksheet relationship missing, sheet skipped",
				"path", path, "sheet", name)
			continue
		}
		part := relPartName("xl", target)

		content.Lines = append(content.Lines, "--- Sheet: "+name+" ---")
		if err := e.extractSheet(&zr.Reader, part, shared, content, links); err != nil {
			return nil, officeqc.Errorf(officeqc.EUNREADABLE, "workbook %s sheet %s: %s",
				path, name, officeqc.ErrorMessage(err))
		}
	}

	content.Links = links.records()
	return content, nil
}

// sharedStrings loads the shared string table, if present.
func (e *XlsxExtractor) sharedStrings(zr *zip.Reader, path string) []string {
	doc, err := readPart(zr, xlsxSharedPart)
	if err != nil {
		if officeqc.ErrorCode(err) != officeqc.ENOTFOUND {
			e.logger.Warn("shared strings unreadable", "path", path, "error", err)
		}
		return nil
	}
	var out []string
	for _, si := range doc.Root().SelectElements("si") {
		out = append(out, gatherText(si, "t"))
	}
	return out
}

func (e *XlsxExtractor) extractSheet(zr *zip.Reader, part string, shared []string, content *officeqc.ExtractedContent, links *linkSet) error {
	doc, err := readPart(zr, part)
	if err != nil {
		return err
	}
	sheetRels, err := readRels(zr, relsPartName(part))
	if err != nil {
		e.logger.Warn("worksheet relationships unreadable, hyperlinks skipped",
			"part", part, "error", err)
		sheetRels = map[string]string{}
	}

	// Hyperlink targets by cell reference. Entries without a
	// relationship id point at internal locations and are not links.
	targets := make(map[string]string)
	if hl := doc.Root().SelectElement("hyperlinks"); hl != nil {
		for _, h := range hl.SelectElements("hyperlink") {
			ref := attrValue(h, "ref")
			relID := attrValue(h, "id")
			if ref == "" || relID == "" {
				continue
			}
			target, ok := sheetRels[relID]
			if !ok {
				e.logger.Warn("worksheet hyperlink references unknown relationship",
					"part", part, "rel", relID)
				continue
			}
			targets[ref] = target
		}
	}

	sheetData := doc.Root().SelectElement("sheetData")
	if sheetData == nil {
		return nil
	}

	for _, row := range sheetData.SelectElements("row") {
		var cells []string
		nonEmpty := false
		for _, c := range row.SelectElements("c") {
			value := cellValue(c, shared)
			idx := columnIndex(attrValue(c, "r"))
			for len(cells) < idx {
				cells = append(cells, "")
			}
			cells = append(cells, value)
			if value != "" {
				nonEmpty = true
			}
			if target, ok := targets[attrValue(c, "r")]; ok {
				links.add(value, target)
			}
		}
		if nonEmpty {
			content.Lines = append(content.Lines, strings.Join(cells, "\t"))
		}
	}
	return nil
}

// cellValue stringifies one cell. Empty cells render as empty strings,
// never as a null marker.
func cellValue(c *etree.Element, shared []string) string {
	v := c.SelectElement("v")
	switch attrValue(c, "t") {
	case "s":
		if v == nil {
			return ""
		}
		i, err := strconv.Atoi(strings.TrimSpace(v.Text()))
		if err != nil || i < 0 || i >= len(shared) {
			return ""
		}
		return shared[i]
	case "inlineStr":
		if is := c.SelectElement("is"); is != nil {
			return gatherText(is, "t")
		}
		return ""
	case "b":
		if v != nil && strings.TrimSpace(v.Text()) == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		if v == nil {
			return ""
		}
		return v.Text()
	}
}

// columnIndex converts the column letters of a cell reference to a
// zero-based index ("A1" → 0, "C7" → 2). Malformed references map to 0.
func columnIndex(ref string) int {
	n := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			break
		}
		n = n*26 + int(r-'A') + 1
	}
	if n == 0 {
		return 0
	}
	return n - 1
}
