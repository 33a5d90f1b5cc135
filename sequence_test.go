package insdc

import (
	"testing"
)

func mustSequence(t *testing.T, alpha *Alphabet, text string) *Sequence {

	t.Helper()
	seq, err := NewSequence(alpha, text, true)
	if err != nil {
		t.Fatalf("NewSequence(%q): %v", text, err)
	}
	return seq
}

func TestNewSequenceValidation(t *testing.T) {

	if _, err := NewSequence(DNA, "ACGTacgt", true); err != nil {
		t.Fatalf("valid sequence rejected: %v", err)
	}

	_, err := NewSequence(DNA, "ACQT", true)
	wantKind(t, err, ErrInvalidSymbol)

	// validation off admits anything
	if _, err := NewSequence(DNA, "ACQT", false); err != nil {
		t.Fatalf("unvalidated sequence rejected: %v", err)
	}
}

func TestAt(t *testing.T) {

	seq := mustSequence(t, DNA, "ACGT")

	sym, err := seq.At(2)
	if err != nil || sym != 'G' {
		t.Errorf("At(2) = %q %v", sym, err)
	}

	_, err = seq.At(4)
	wantKind(t, err, ErrOutOfRange)
	_, err = seq.At(-1)
	wantKind(t, err, ErrOutOfRange)
}

func TestSubsequence(t *testing.T) {

	seq := mustSequence(t, DNA, "ACGTACGTAC")
	seq.ID = "X1"
	seq.Metadata["origin"] = "test"

	sub, err := seq.Subsequence(2, 6)
	if err != nil {
		t.Fatalf("Subsequence: %v", err)
	}
	if sub.String() != "GTACGT" {
		t.Errorf("Subsequence = %q", sub.String())
	}
	if sub.ID != "X1" || sub.Alphabet != DNA {
		t.Errorf("id or alphabet not inherited")
	}
	if sub.Metadata["origin"] != "test" {
		t.Errorf("metadata not copied")
	}

	// the copy is shallow but independent
	sub.Metadata["origin"] = "changed"
	if seq.Metadata["origin"] != "test" {
		t.Errorf("metadata map is shared with the parent")
	}

	_, err = seq.Subsequence(8, 5)
	wantKind(t, err, ErrOutOfRange)
}

func TestSubsequenceComposition(t *testing.T) {

	seq := mustSequence(t, DNA, "ACGTACGTACGTACGT")

	outer, err := seq.Subsequence(3, 10)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := outer.Subsequence(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := seq.Subsequence(5, 5)
	if err != nil {
		t.Fatal(err)
	}

	if inner.String() != direct.String() {
		t.Errorf("composition broke: %q vs %q", inner.String(), direct.String())
	}
}

func TestDoubleReverse(t *testing.T) {

	seq := mustSequence(t, DNA, "ACGGTT")
	if got := seq.Reverse().Reverse().String(); got != seq.String() {
		t.Errorf("double reverse = %q", got)
	}
}

func TestReverseComplementDuality(t *testing.T) {

	for _, text := range []string{"ACGT", "acgtn-", "GGGCCCAT"} {
		seq := mustSequence(t, DNA, text)

		rc, err := seq.ReverseComplement()
		if err != nil {
			t.Fatal(err)
		}
		cm, err := seq.Complement()
		if err != nil {
			t.Fatal(err)
		}
		if rc.String() != cm.Reverse().String() {
			t.Errorf("%q: reverse complement %q != complement then reverse %q",
				text, rc.String(), cm.Reverse().String())
		}
	}
}

func TestComplementValues(t *testing.T) {

	seq := mustSequence(t, DNA, "AACGT")
	cm, err := seq.Complement()
	if err != nil {
		t.Fatal(err)
	}
	if cm.String() != "TTGCA" {
		t.Errorf("Complement = %q", cm.String())
	}

	prot := mustSequence(t, Protein, "MKV")
	_, err = prot.Complement()
	wantKind(t, err, ErrUnsupported)
	_, err = prot.ReverseComplement()
	wantKind(t, err, ErrUnsupported)
}

func TestNonGapScans(t *testing.T) {

	seq := mustSequence(t, DNA, "--AC--G-")

	if idx := seq.IndexOfNonGap(0); idx != 2 {
		t.Errorf("IndexOfNonGap(0) = %d", idx)
	}
	if idx := seq.IndexOfNonGap(4); idx != 6 {
		t.Errorf("IndexOfNonGap(4) = %d", idx)
	}
	if idx := seq.IndexOfNonGap(7); idx != -1 {
		t.Errorf("IndexOfNonGap(7) = %d", idx)
	}
	if idx := seq.LastIndexOfNonGap(7); idx != 6 {
		t.Errorf("LastIndexOfNonGap(7) = %d", idx)
	}
	if idx := seq.LastIndexOfNonGap(1); idx != -1 {
		t.Errorf("LastIndexOfNonGap(1) = %d", idx)
	}

	gaps := mustSequence(t, DNA, "----")
	if idx := gaps.IndexOfNonGap(0); idx != -1 {
		t.Errorf("all-gap IndexOfNonGap = %d", idx)
	}
}
