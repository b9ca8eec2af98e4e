package fmindex

// BuildBWT derives the Burrows-Wheeler transform of text from its suffix
// array: position i of the output holds the byte cyclically preceding the
// suffix that sorts i-th. The output is a permutation of text's bytes and,
// together with the C-table and rank structure, is reversible back to text.
func BuildBWT(text []byte, suffixArray []int) ([]byte, error) {
	if len(text) != len(suffixArray) {
		return nil, ErrLengthMismatch
	}
	n := len(text)
	bwt := make([]byte, n)
	for i, off := range suffixArray {
		bwt[i] = text[(off-1+n)%n]
	}
	return bwt, nil
}
