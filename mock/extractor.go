// Package mock provides hand-written mocks for the domain interfaces.
package mock

import (
	"context"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

var _ officeqc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of officeqc.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, path string) (*officeqc.ExtractedContent, error)
}

func (e *Extractor) Extract(ctx context.Context, path string) (*officeqc.ExtractedContent, error) {
	return e.ExtractFn(ctx, path)
}

var _ officeqc.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of officeqc.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn func(kind officeqc.Kind) officeqc.Extractor
}

func (r *ExtractorRegistry) Get(kind officeqc.Kind) officeqc.Extractor {
	return r.GetFn(kind)
}
