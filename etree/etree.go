// Package etree implements the document extractors on top of OOXML
// containers. Each supported format is a ZIP archive of XML parts; the
// parts are parsed with beevik/etree and walked by local element name so
// namespace prefixes do not matter.
package etree

import (
	"archive/zip"
	"log/slog"
	"path"
	"strings"

	"github.com/beevik/etree"
	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

// Ensure Registry implements officeqc.ExtractorRegistry at compile time.
var _ officeqc.ExtractorRegistry = (*Registry)(nil)

// Registry is a dispatch table from document kind to extractor.
type Registry struct {
	extractors map[officeqc.Kind]officeqc.Extractor
}

// NewRegistry creates a Registry covering all supported kinds.
// If logger is nil, slog.Default() is used.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		extractors: map[officeqc.Kind]officeqc.Extractor{
			officeqc.KindDocx: NewDocxExtractor(logger),
			officeqc.KindXlsx: NewXlsxExtractor(logger),
			officeqc.KindPptx: NewPptxExtractor(logger),
		},
	}
}

// Get returns the extractor for a kind, or nil when the kind is not
// supported.
func (r *Registry) Get(kind officeqc.Kind) officeqc.Extractor {
	return r.extractors[kind]
}

// readPart parses one named XML part out of an OOXML archive.
// Returns ENOTFOUND if the part is not present.
func readPart(zr *zip.Reader, name string) (*etree.Document, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, officeqc.Errorf(officeqc.EUNREADABLE, "open part %s: %v", name, err)
		}
		defer rc.Close()

		doc := etree.NewDocument()
		if _, err := doc.ReadFrom(rc); err != nil {
			return nil, officeqc.Errorf(officeqc.EUNREADABLE, "parse part %s: %v", name, err)
		}
		if doc.Root() == nil {
			return nil, officeqc.Errorf(officeqc.EUNREADABLE, "part %s has no root element", name)
		}
		return doc, nil
	}
	return nil, officeqc.Errorf(officeqc.ENOTFOUND, "part %s not found in archive", name)
}

// readRels parses a relationships part into an Id → Target map.
// A missing part yields an empty map: a document without relationships
// simply has no resolvable hyperlinks.
func readRels(zr *zip.Reader, name string) (map[string]string, error) {
	doc, err := readPart(zr, name)
	if err != nil {
		if officeqc.ErrorCode(err) == officeqc.ENOTFOUND {
			return map[string]string{}, nil
		}
		return nil, err
	}

	rels := make(map[string]string)
	for _, rel := range doc.Root().SelectElements("Relationship") {
		id := attrValue(rel, "Id")
		target := attrValue(rel, "Target")
		if id != "" && target != "" {
			rels[id] = target
		}
	}
	return rels, nil
}

// relPartName resolves a relationship target against the directory of the
// part that referenced it, yielding an archive part name.
func relPartName(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// relsPartName returns the relationships part name for a given part,
// e.g. xl/worksheets/sheet1.xml → xl/worksheets/_rels/sheet1.xml.rels.
func relsPartName(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// attrValue returns an attribute value matched by local name, ignoring
// any namespace prefix (r:id and id both match "id").
func attrValue(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// gatherText concatenates the text of every descendant element with the
// given local tag, in document order.
func gatherText(el *etree.Element, tag string) string {
	var sb strings.Builder
	appendText(el, tag, &sb)
	return sb.String()
}

func appendText(el *etree.Element, tag string, sb *strings.Builder) {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			sb.WriteString(child.Text())
			continue
		}
		appendText(child, tag, sb)
	}
}

// linkSet deduplicates link records by (text, target). The canonical
// output order is first-seen document order.
type linkSet struct {
	seen map[officeqc.LinkRecord]struct{}
	out  []officeqc.LinkRecord
}

func newLinkSet() *linkSet {
	return &linkSet{seen: make(map[officeqc.LinkRecord]struct{})}
}

// add records a link when both fields are non-empty and the pair has not
// been seen before.
func (s *linkSet) add(text, target string) {
	if text == "" || target == "" {
		return
	}
	rec := officeqc.LinkRecord{Text: text, Target: target}
	if _, ok := s.seen[rec]; ok {
		return
	}
	s.seen[rec] = struct{}{}
	s.out = append(s.out, rec)
}

func (s *linkSet) records() []officeqc.LinkRecord {
	return s.out
}
