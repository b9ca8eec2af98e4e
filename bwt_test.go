package fmindex

import (
	"errors"
	"sort"
	"testing"
)

func TestBuildBWTBanana(t *testing.T) {
	text := []byte("banana\x00")
	sa, err := BuildSuffixArray(text)
	if err != nil {
		t.Fatal(err)
	}
	bwt, err := BuildBWT(text, sa)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(bwt), "annb\x00aa"; got != want {
		t.Errorf("BWT = %q, want %q", got, want)
	}
}

func TestBuildBWTLengthMismatch(t *testing.T) {
	if _, err := BuildBWT([]byte("ab\x00"), []int{0, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("BuildBWT error = %v, want ErrLengthMismatch", err)
	}
}

func TestBWTIsPermutationOfText(t *testing.T) {
	text := []byte("mississippi\x00")
	sa, err := BuildSuffixArray(text)
	if err != nil {
		t.Fatal(err)
	}
	bwt, err := BuildBWT(text, sa)
	if err != nil {
		t.Fatal(err)
	}

	a := append([]byte(nil), text...)
	b := append([]byte(nil), bwt...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	if string(a) != string(b) {
		t.Errorf("BWT %q is not a permutation of text %q", bwt, text)
	}
}
