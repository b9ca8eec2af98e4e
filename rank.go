package fmindex

// occTable answers rank(b, pos): the number of occurrences of b in
// bwt[0:pos). rank is total over the byte alphabet; a byte that never
// occurs in the BWT ranks 0 at every position, and rank(b, 0) is 0 for
// every byte. The two implementations trade memory for query speed behind
// this single capability.
type occTable interface {
	rank(b byte, pos int) int
}

// denseOcc stores, for every byte present in the BWT, the full prefix-count
// array: prefix[b][k] occurrences of b in bwt[0:k). rank is one array read.
type denseOcc struct {
	prefix map[byte][]int32
}

func newDenseOcc(bwt []byte) *denseOcc {
	prefix := make(map[byte][]int32)
	for _, b := range bwt {
		if prefix[b] == nil {
			prefix[b] = make([]int32, len(bwt)+1)
		}
	}
	for sym, counts := range prefix {
		var c int32
		for i, b := range bwt {
			if b == sym {
				c++
			}
			counts[i+1] = c
		}
	}
	return &denseOcc{prefix: prefix}
}

func (d *denseOcc) rank(b byte, pos int) int {
	counts := d.prefix[b]
	if counts == nil {
		return 0
	}
	return int(counts[pos])
}

// One occurrence checkpoint per this many BWT positions in sampledOcc.
const occSampleRate = 64

// sampledOcc keeps a checkpoint every occSampleRate positions and finishes
// each query with a local scan of at most occSampleRate-1 BWT bytes, so a
// rank query never rescans the whole BWT.
type sampledOcc struct {
	bwt    []byte
	checks map[byte][]int32 // checks[b][k] = occurrences of b in bwt[0 : k*occSampleRate)
}

func newSampledOcc(bwt []byte) *sampledOcc {
	nchecks := len(bwt)/occSampleRate + 1
	checks := make(map[byte][]int32)
	for _, b := range bwt {
		if checks[b] == nil {
			checks[b] = make([]int32, nchecks)
		}
	}
	for sym, cs := range checks {
		var c int32
		for i, b := range bwt {
			if i%occSampleRate == 0 {
				cs[i/occSampleRate] = c
			}
			if b == sym {
				c++
			}
		}
	}
	return &sampledOcc{bwt: bwt, checks: checks}
}

func (s *sampledOcc) rank(b byte, pos int) int {
	cs := s.checks[b]
	if cs == nil {
		return 0
	}
	k := pos / occSampleRate
	c := int(cs[k])
	for i := k * occSampleRate; i < pos; i++ {
		if s.bwt[i] == b {
			c++
		}
	}
	return c
}

// buildCTable counts every byte of text and accumulates the counts in byte
// order: ctab[b] is the number of bytes in text strictly smaller than b,
// which is also the first suffix-array row whose suffix starts with b.
// Both tables cover the whole byte alphabet, so absent bytes have
// well-defined entries (counts[b] == 0 and ctab[b] == ctab of the next
// smaller present byte's upper bound).
func buildCTable(text []byte) (counts, ctab [256]int) {
	for _, b := range text {
		counts[b]++
	}
	total := 0
	for s := 0; s < 256; s++ {
		ctab[s] = total
		total += counts[s]
	}
	return counts, ctab
}
