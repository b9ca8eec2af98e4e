package fmindex

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/viniciusth/rmq"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyText      = errors.New("fmindex: text must not be empty")
	ErrEmptyPattern   = errors.New("fmindex: pattern must not be empty")
	ErrReservedByte   = errors.New("fmindex: input contains the reserved sentinel byte")
	ErrInvalidUTF8    = errors.New("fmindex: invalid UTF-8 encoding in input")
	ErrLengthMismatch = errors.New("fmindex: text and suffix array lengths differ")
)

const (
	// 0x00 is the only byte that sorts strictly before every other byte,
	// so it is the terminator appended to the indexed text. Inputs that
	// already contain it are rejected.
	sentinel = 0x00
)

type IndexBuilder struct {
	text          string
	useLCP        bool
	sampledOcc    bool
	caseSensitive bool
	normalize     bool
}

func NewBuilder(text string) *IndexBuilder {
	return &IndexBuilder{
		text:          text,
		useLCP:        true,
		sampledOcc:    false,
		caseSensitive: false,
		normalize:     true,
	}
}

// Skips the LCP array and RMQ construction, which back the binary-search
// Lookup path. Lookup falls back to naive suffix comparison, making it
// O(|P| * log(|S|)) instead of O(|P| + log(|S|)).
// Saves O(|S|) memory. Search is unaffected: backward search never touches
// the LCP structures.
func (b *IndexBuilder) SkipLCP() *IndexBuilder {
	b.useLCP = false
	return b
}

// Stores occurrence checkpoints every occSampleRate positions of the BWT
// instead of a full per-symbol prefix-count table, completing each rank
// query with a short local scan.
// Saves memory proportional to |S| per distinct symbol.
// Trade-off: rank (and therefore each backward-search step) is slower by a
// small constant factor.
func (b *IndexBuilder) SampledRanks() *IndexBuilder {
	b.sampledOcc = true
	return b
}

// Makes the search case sensitive.
func (b *IndexBuilder) CaseSensitive() *IndexBuilder {
	b.caseSensitive = true
	return b
}

// Skips the normalization of the text and patterns with NFC.
func (b *IndexBuilder) SkipNormalization() *IndexBuilder {
	b.normalize = false
	return b
}

func (b *IndexBuilder) Build() (*Index, error) {
	if len(b.text) == 0 {
		return nil, ErrEmptyText
	}
	if b.normalize && !utf8.ValidString(b.text) {
		return nil, ErrInvalidUTF8
	}

	transformed := applyTransforms(b.text, b.caseSensitive, b.normalize)
	if strings.IndexByte(transformed, sentinel) >= 0 {
		return nil, ErrReservedByte
	}

	text := append([]byte(transformed), sentinel)
	suffixArray, err := BuildSuffixArray(text)
	if err != nil {
		return nil, err
	}
	bwt, err := BuildBWT(text, suffixArray)
	if err != nil {
		return nil, err
	}
	counts, ctab := buildCTable(text)

	var occ occTable
	if b.sampledOcc {
		occ = newSampledOcc(bwt)
	} else {
		occ = newDenseOcc(bwt)
	}

	var lcp []int
	var lcpRMQ *rmq.RMQHybridNaive[int]
	if b.useLCP {
		lcp = BuildLCPArray(suffixArray, text)
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}

	return &Index{
		text:          text,
		suffixArray:   suffixArray,
		bwt:           bwt,
		counts:        counts,
		ctab:          ctab,
		occ:           occ,
		lcp:           lcp,
		lcpRMQ:        lcpRMQ,
		caseSensitive: b.caseSensitive,
		normalize:     b.normalize,
	}, nil
}

// Index is a compressed full-text index over a single immutable text.
// All fields are read-only after Build, so one Index may be shared by any
// number of concurrent Search, Lookup and Count calls without locking.
type Index struct {
	text          []byte // transformed text, sentinel-terminated
	suffixArray   []int
	bwt           []byte
	counts        [256]int
	ctab          [256]int
	occ           occTable
	lcp           []int
	lcpRMQ        *rmq.RMQHybridNaive[int]
	caseSensitive bool
	normalize     bool
}

func applyTransforms(text string, caseSensitive bool, normalize bool) string {
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	if normalize {
		text = norm.NFC.String(text)
	}
	return text
}

// Search returns the start offsets of every occurrence of pattern in the
// indexed text, in ascending order, using backward search over the BWT.
// Offsets are positions in the indexed text as returned by Text, i.e. after
// case folding and normalization when those are enabled.
// An empty pattern and a pattern containing the sentinel byte are invalid
// input; a pattern over bytes that never occur in the text is a valid query
// answered with no matches.
func (x *Index) Search(pattern string) ([]int, error) {
	p, err := x.preparePattern(pattern)
	if err != nil {
		return nil, err
	}
	lo, hi := x.backwardRange(p)
	return x.collectOffsets(lo, hi), nil
}

// Count returns the number of occurrences of pattern in the indexed text
// without materializing their offsets. Input policy is the same as Search.
func (x *Index) Count(pattern string) (int, error) {
	p, err := x.preparePattern(pattern)
	if err != nil {
		return 0, err
	}
	lo, hi := x.backwardRange(p)
	return hi - lo, nil
}

// Lookup returns the same offsets as Search but locates the suffix-array
// interval by binary search, accelerated by the LCP array and RMQ when they
// were built. It exists so the two locate strategies can check each other;
// callers normally want Search.
func (x *Index) Lookup(pattern string) ([]int, error) {
	p, err := x.preparePattern(pattern)
	if err != nil {
		return nil, err
	}
	lo, hi := lookupRange(p, x.text, x.suffixArray, x.lcp, x.lcpRMQ)
	return x.collectOffsets(lo, hi), nil
}

func (x *Index) preparePattern(pattern string) ([]byte, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if x.normalize && !utf8.ValidString(pattern) {
		return nil, ErrInvalidUTF8
	}
	pattern = applyTransforms(pattern, x.caseSensitive, x.normalize)
	if strings.IndexByte(pattern, sentinel) >= 0 {
		return nil, ErrReservedByte
	}
	return []byte(pattern), nil
}

// backwardRange narrows the full suffix-array range one pattern byte at a
// time, from the last byte to the first. Every step maps the current range
// through LF: lo' = C[b] + rank(b, lo), hi' = C[b] + rank(b, hi). The range
// stays half-open throughout; an empty range means no occurrence.
func (x *Index) backwardRange(pattern []byte) (lo, hi int) {
	lo, hi = 0, len(x.bwt)
	for i := len(pattern) - 1; i >= 0; i-- {
		b := pattern[i]
		if x.counts[b] == 0 {
			// b never occurs in the text, so no suffix can match.
			return 0, 0
		}
		lo = x.ctab[b] + x.occ.rank(b, lo)
		hi = x.ctab[b] + x.occ.rank(b, hi)
		if lo >= hi {
			return 0, 0
		}
	}
	return lo, hi
}

func (x *Index) collectOffsets(lo, hi int) []int {
	if lo >= hi {
		return nil
	}
	offsets := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		offsets = append(offsets, x.suffixArray[i])
	}
	sort.Ints(offsets)
	return offsets
}

// Restore reconstructs the indexed text (without the sentinel) from the BWT
// alone by walking the LF mapping backwards from the sentinel row.
func (x *Index) Restore() []byte {
	n := len(x.bwt)
	out := make([]byte, n-1)
	// Row 0 is the sentinel-only suffix; its BWT byte is the last real
	// byte of the text.
	row := 0
	for i := n - 2; i >= 0; i-- {
		b := x.bwt[row]
		out[i] = b
		row = x.ctab[b] + x.occ.rank(b, row)
	}
	return out
}

// Text returns a copy of the indexed text, after case folding and
// normalization when those are enabled, without the sentinel.
func (x *Index) Text() []byte {
	out := make([]byte, len(x.text)-1)
	copy(out, x.text)
	return out
}

// BWT returns a copy of the Burrows-Wheeler transform of the
// sentinel-terminated text, for external serialization.
func (x *Index) BWT() []byte {
	out := make([]byte, len(x.bwt))
	copy(out, x.bwt)
	return out
}

// SuffixArray returns a copy of the suffix array of the sentinel-terminated
// text, for external serialization.
func (x *Index) SuffixArray() []int {
	out := make([]int, len(x.suffixArray))
	copy(out, x.suffixArray)
	return out
}
