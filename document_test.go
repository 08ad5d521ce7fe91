package officeqc_test

import (
	"testing"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want officeqc.Kind
	}{
		{"report.docx", officeqc.KindDocx},
		{"Report.DOCX", officeqc.KindDocx},
		{"numbers.xlsx", officeqc.KindXlsx},
		{"macros.xlsm", officeqc.KindXlsx},
		{"deck.pptx", officeqc.KindPptx},
		{"notes.txt", officeqc.KindUnsupported},
		{"archive.zip", officeqc.KindUnsupported},
		{"noext", officeqc.KindUnsupported},
		{"/abs/path/report.pptx", officeqc.KindPptx},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, officeqc.DetectKind(tt.path))
		})
	}
}

func TestNewSourceDocument(t *testing.T) {
	t.Parallel()

	t.Run("splits name and lowercases extension", func(t *testing.T) {
		t.Parallel()

		doc := officeqc.NewSourceDocument("/data/in/Quarterly Report.DOCX")

		assert.Equal(t, "Quarterly Report.DOCX", doc.DisplayName)
		assert.Equal(t, "Quarterly Report", doc.BaseName)
		assert.Equal(t, "docx", doc.Ext)
		assert.Equal(t, officeqc.KindDocx, doc.Kind)
	})

	t.Run("file without extension", func(t *testing.T) {
		t.Parallel()

		doc := officeqc.NewSourceDocument("/data/in/README")

		assert.Equal(t, "README", doc.DisplayName)
		assert.Equal(t, "README", doc.BaseName)
		assert.Equal(t, "", doc.Ext)
		assert.Equal(t, officeqc.KindUnsupported, doc.Kind)
	})
}

func TestExtractedContentText(t *testing.T) {
	t.Parallel()

	c := &officeqc.ExtractedContent{Lines: []string{"Hello", "World", "X\tY"}}
	assert.Equal(t, "Hello\nWorld\nX\tY", c.Text())

	empty := &officeqc.ExtractedContent{}
	assert.Equal(t, "", empty.Text())
}
