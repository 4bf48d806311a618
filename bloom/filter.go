// Package bloom counts distinct link targets using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for link target deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected targets
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a target to the filter.
func (f *Filter) Add(target string) {
	f.f.AddString(target)
}

// Test returns true if the target might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(target string) bool {
	return f.f.TestString(target)
}

// Seen adds target and reports whether it was probably present already.
func (f *Filter) Seen(target string) bool {
	return f.f.TestAndAddString(target)
}

// EstimatedCount returns the approximate number of distinct targets added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
