package mock

import (
	"context"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

var _ officeqc.LinkTableReader = (*LinkTableReader)(nil)

// LinkTableReader is a mock implementation of officeqc.LinkTableReader.
type LinkTableReader struct {
	ReadFn func(path string) (*officeqc.LinkTable, error)
}

func (r *LinkTableReader) Read(path string) (*officeqc.LinkTable, error) {
	return r.ReadFn(path)
}

var _ officeqc.LinkSink = (*LinkSink)(nil)

// LinkSink is a mock implementation of officeqc.LinkSink.
type LinkSink struct {
	OpenFn func(ctx context.Context, target string) error
}

func (s *LinkSink) Open(ctx context.Context, target string) error {
	return s.OpenFn(ctx, target)
}
