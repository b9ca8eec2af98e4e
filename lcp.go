package fmindex

import (
	"bytes"
	"sort"

	"github.com/viniciusth/rmq"
)

// BuildLCPArray builds the LCP array for the suffix array of text using
// Kasai's algorithm in O(n) time: entry i is the length of the longest
// common prefix of the suffixes at suffixArray[i] and suffixArray[i+1].
func BuildLCPArray(suffixArray []int, text []byte) []int {
	rank := make([]int, len(suffixArray))
	for i := range suffixArray {
		rank[suffixArray[i]] = i
	}

	lcp := make([]int, len(suffixArray)-1)
	l := 0
	for i := range suffixArray {
		if rank[i]+1 == len(suffixArray) {
			l = 0
			continue
		}
		j := suffixArray[rank[i]+1]
		for i+l < len(text) && j+l < len(text) && text[i+l] == text[j+l] {
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}

	return lcp
}

// lookupRange finds the half-open suffix-array interval [lo, hi) of all
// suffixes having pattern as a prefix, by binary search. With an LCP array
// and its RMQ present, each probe resumes comparison from the longest
// prefix already matched instead of starting over; without them it falls
// back to naive suffix comparison. Returns (0, 0) when pattern does not
// occur.
func lookupRange(pattern, text []byte, suffixArray, lcp []int, lcpRMQ *rmq.RMQHybridNaive[int]) (int, int) {
	bestIdx, best, n := -1, -1, len(suffixArray)

	// expandBest extends the match between pattern and the suffix at
	// suffixArray[i], starting from offset best, and reports whether
	// pattern sorts at or before that suffix.
	expandBest := func(i int) bool {
		off := suffixArray[i]
		for best < len(pattern) && off+best < len(text) && pattern[best] == text[off+best] {
			best++
		}
		if best == len(pattern) {
			// pattern is a prefix of the suffix.
			return true
		} else if off+best == len(text) {
			// the suffix is a proper prefix of pattern.
			return false
		}
		return pattern[best] < text[off+best]
	}

	// First suffix-array index whose suffix is >= pattern.
	lo := sort.Search(n, func(i int) bool {
		if lcp != nil {
			if bestIdx == -1 {
				bestIdx = i
				best = 0
				return expandBest(i)
			}
			common := lcp[lcpRMQ.Query(min(bestIdx, i), max(bestIdx, i)-1)]
			if common < best {
				// The probed suffix diverges from the best candidate
				// before the matched prefix ends, so it compares to
				// pattern exactly as it compares to the candidate.
				return i > bestIdx
			}
			// Agrees with pattern at least up to best; resume there.
			bestIdx = i
			return expandBest(i)
		}
		return bytes.Compare(pattern, text[suffixArray[i]:]) <= 0
	})

	if lo == n || (lcp != nil && best < len(pattern)) || (lcp == nil && !bytes.HasPrefix(text[suffixArray[lo]:], pattern)) {
		return 0, 0
	}

	// Width of the matching block: it ends at the first suffix whose
	// common prefix with suffixArray[lo] is shorter than the pattern.
	width := sort.Search(n-lo, func(i int) bool {
		if lcp != nil {
			if i == 0 {
				// lo itself is known to match.
				return false
			}
			return lcp[lcpRMQ.Query(lo, lo+i-1)] < len(pattern)
		}
		return !bytes.HasPrefix(text[suffixArray[lo+i]:], pattern)
	})

	return lo, lo + width
}
