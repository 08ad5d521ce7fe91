package mock

import (
	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

var _ officeqc.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of officeqc.ArtifactWriter.
type ArtifactWriter struct {
	SetupFn      func() error
	WriteTextFn  func(doc officeqc.SourceDocument, content *officeqc.ExtractedContent) (string, error)
	WriteLinksFn func(doc officeqc.SourceDocument, links []officeqc.LinkRecord) (string, error)
}

func (w *ArtifactWriter) Setup() error {
	return w.SetupFn()
}

func (w *ArtifactWriter) WriteText(doc officeqc.SourceDocument, content *officeqc.ExtractedContent) (string, error) {
	return w.WriteTextFn(doc, content)
}

func (w *ArtifactWriter) WriteLinks(doc officeqc.SourceDocument, links []officeqc.LinkRecord) (string, error) {
	return w.WriteLinksFn(doc, links)
}
