package etree_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
	qcetree "github.com/johnChow-tech/office-files-quality-check/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

func docxArchive(t *testing.T, documentXML, relsXML string) string {
	t.Helper()
	parts := map[string]string{
		"word/document.xml": documentXML,
	}
	if relsXML != "" {
		parts["word/_rels/document.xml.rels"] = relsXML
	}
	return writeArchive(t, "test.docx", parts)
}

func TestDocxExtract(t *testing.T) {
	t.Parallel()

	t.Run("paragraphs then tables with one hyperlink", func(t *testing.T) {
		t.Parallel()

		documentXML := relsXMLHeader + `
<w:document ` + docxNS + `>
  <w:body>
    <w:p>
      <w:r><w:t>Hello</w:t></w:r>
      <w:hyperlink r:id="rId1"><w:r><w:t>link</w:t></w:r></w:hyperlink>
    </w:p>
    <w:p><w:r><w:t>World</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>X</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Y</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`
		relsXML := relsXMLHeader + `
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="http://x.test" TargetMode="External"/>
</Relationships>`

		path := docxArchive(t, documentXML, relsXML)
		content, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "Hello\nWorld\nX\tY", content.Text())
		assert.Equal(t, []officeqc.LinkRecord{{Text: "link", Target: "http://x.test"}}, content.Links)
	})

	t.Run("links deduplicated by text and target pair", func(t *testing.T) {
		t.Parallel()

		documentXML := relsXMLHeader + `
<w:document ` + docxNS + `>
  <w:body>
    <w:p>
      <w:hyperlink r:id="rId1"><w:r><w:t>same</w:t></w:r></w:hyperlink>
      <w:hyperlink r:id="rId2"><w:r><w:t>same</w:t></w:r></w:hyperlink>
      <w:hyperlink r:id="rId1"><w:r><w:t>same</w:t></w:r></w:hyperlink>
    </w:p>
  </w:body>
</w:document>`
		relsXML := relsXMLHeader + `
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="http://a.test" TargetMode="External"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="http://b.test" TargetMode="External"/>
</Relationships>`

		path := docxArchive(t, documentXML, relsXML)
		content, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.NoError(t, err)

		// Identical text with different targets yields two records;
		// an identical pair collapses to one, first-seen order kept.
		assert.Equal(t, []officeqc.LinkRecord{
			{Text: "same", Target: "http://a.test"},
			{Text: "same", Target: "http://b.test"},
		}, content.Links)
	})

	t.Run("dangling relationship skips link but keeps text", func(t *testing.T) {
		t.Parallel()

		documentXML := relsXMLHeader + `
<w:document ` + docxNS + `>
  <w:body>
    <w:p>
      <w:r><w:t>Before</w:t></w:r>
      <w:hyperlink r:id="rId99"><w:r><w:t>broken</w:t></w:r></w:hyperlink>
    </w:p>
  </w:body>
</w:document>`

		path := docxArchive(t, documentXML, "")
		content, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "Before", content.Text())
		assert.Empty(t, content.Links)
	})

	t.Run("empty trimmed link text discarded", func(t *testing.T) {
		t.Parallel()

		documentXML := relsXMLHeader + `
<w:document ` + docxNS + `>
  <w:body>
    <w:p>
      <w:hyperlink r:id="rId1"><w:r><w:t>   </w:t></w:r></w:hyperlink>
    </w:p>
  </w:body>
</w:document>`
		relsXML := relsXMLHeader + `
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="http://a.test" TargetMode="External"/>
</Relationships>`

		path := docxArchive(t, documentXML, relsXML)
		content, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Empty(t, content.Links)
	})

	t.Run("not a zip file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.docx")
		require.NoError(t, os.WriteFile(path, []byte("plain text, not an archive"), 0644))

		_, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.Error(t, err)
		assert.Equal(t, officeqc.EUNREADABLE, officeqc.ErrorCode(err))
	})

	t.Run("archive without document part", func(t *testing.T) {
		t.Parallel()

		path := writeArchive(t, "empty.docx", map[string]string{"word/other.xml": "<x/>"})
		_, err := qcetree.NewDocxExtractor(testLogger()).Extract(context.Background(), path)
		require.Error(t, err)
		assert.Equal(t, officeqc.EUNREADABLE, officeqc.ErrorCode(err))
	})
}
