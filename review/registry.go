// Package review provides the cross-file deduplication and link review
// orchestrator. A session reads link tables back in caller order, keeps a
// session-scoped registry of URLs already accepted for opening, and
// drives a pacing-controlled "confirm and open" sequence against an
// external link sink.
package review

import (
	"github.com/bits-and-blooms/bloom/v3"
)

// defaultExpectedURLs sizes the registry's Bloom filter when the caller
// gives no estimate.
const defaultExpectedURLs = 4096

// Registry is the session-scoped set of URLs already accepted for
// opening. It grows monotonically within one session and is never
// persisted or shared across sessions. A Bloom filter fronts the exact
// set so the common miss case skips the map lookup; membership itself
// stays exact.
type Registry struct {
	filter *bloom.BloomFilter
	seen   map[string]struct{}
}

// NewRegistry creates a Registry sized for the expected number of
// distinct URLs in the session.
func NewRegistry(expected uint) *Registry {
	if expected == 0 {
		expected = defaultExpectedURLs
	}
	return &Registry{
		filter: bloom.NewWithEstimates(expected, 0.01),
		seen:   make(map[string]struct{}),
	}
}

// Add records a URL and reports whether it was new to the session.
// The first occurrence wins; later occurrences report false.
func (r *Registry) Add(url string) bool {
	if r.filter.TestString(url) {
		if _, ok := r.seen[url]; ok {
			return false
		}
	}
	r.filter.AddString(url)
	r.seen[url] = struct{}{}
	return true
}

// Len returns the number of distinct URLs recorded in the session.
func (r *Registry) Len() int {
	return len(r.seen)
}
