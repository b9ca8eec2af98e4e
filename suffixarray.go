package fmindex

import (
	"bytes"
	"sort"
)

// BuildSuffixArray returns the suffix array of text: the start offsets of
// all suffixes of text, ordered so that the suffix at the returned offset i
// is lexicographically smaller than the suffix at offset i+1. The caller is
// expected to have terminated text with a unique smallest byte, which makes
// the order total; without it, equal-prefix suffixes still sort consistently
// by the usual shorter-first rule of bytes.Compare.
//
// The implementation is a plain comparison sort, O(n^2 log n) in the worst
// case. Anything honoring the same contract, such as a linear-time SA-IS,
// can replace it without affecting downstream components.
func BuildSuffixArray(text []byte) ([]int, error) {
	if len(text) == 0 {
		return nil, ErrEmptyText
	}
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa, nil
}
