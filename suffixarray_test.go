package fmindex

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildSuffixArrayBanana(t *testing.T) {
	sa, err := BuildSuffixArray([]byte("banana\x00"))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{6, 5, 3, 1, 0, 4, 2}
	if diff := cmp.Diff(want, sa); diff != "" {
		t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSuffixArrayEmpty(t *testing.T) {
	if _, err := BuildSuffixArray(nil); !errors.Is(err, ErrEmptyText) {
		t.Errorf("BuildSuffixArray(nil) error = %v, want ErrEmptyText", err)
	}
}

func TestBuildSuffixArrayProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := r.Intn(200) + 1
		text := make([]byte, n+1)
		for i := 0; i < n; i++ {
			text[i] = byte(r.Intn(4) + 'a')
		}
		text[n] = sentinel

		sa, err := BuildSuffixArray(text)
		if err != nil {
			t.Fatal(err)
		}

		// Permutation of 0..len(text)-1.
		seen := make([]bool, len(text))
		for _, off := range sa {
			if off < 0 || off >= len(text) || seen[off] {
				t.Fatalf("not a permutation: offset %d in %v", off, sa)
			}
			seen[off] = true
		}

		// Adjacent suffixes strictly increase.
		for i := 1; i < len(sa); i++ {
			if bytes.Compare(text[sa[i-1]:], text[sa[i]:]) >= 0 {
				t.Fatalf("suffixes out of order at %d: %q >= %q",
					i, text[sa[i-1]:], text[sa[i]:])
			}
		}
	}
}
