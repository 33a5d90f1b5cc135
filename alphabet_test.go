package insdc

import (
	"testing"
)

func TestAlphabetValidity(t *testing.T) {

	tests := []struct {
		alpha *Alphabet
		sym   byte
		want  bool
	}{
		{DNA, 'A', true},
		{DNA, 'a', true},
		{DNA, 'T', true},
		{DNA, 'N', true},
		{DNA, '-', true},
		{DNA, 'U', false},
		{DNA, '*', false},
		{DNA, ' ', false},
		{RNA, 'U', true},
		{RNA, 'u', true},
		{RNA, 'T', false},
		{Protein, 'M', true},
		{Protein, '*', true},
		{Protein, 'J', true},
		{Protein, '1', false},
	}

	for _, tc := range tests {
		if got := tc.alpha.Valid(tc.sym); got != tc.want {
			t.Errorf("%s.Valid(%q) = %v, want %v", tc.alpha.Name, tc.sym, got, tc.want)
		}
	}
}

func TestValidateBuffer(t *testing.T) {

	buf := []byte("acgtACGTn-")
	if !DNA.ValidateBuffer(buf, 0, len(buf)) {
		t.Errorf("DNA should accept %q", buf)
	}
	if DNA.ValidateBuffer([]byte("ACXGT"), 0, 5) {
		t.Errorf("DNA should reject X")
	}
	if DNA.ValidateBuffer(buf, 5, 20) {
		t.Errorf("out of range buffer should be rejected")
	}
}

func TestFold(t *testing.T) {

	if DNA.Fold('a') != 'A' {
		t.Errorf("Fold(a) = %q", DNA.Fold('a'))
	}
	if DNA.Fold('G') != 'G' {
		t.Errorf("Fold(G) = %q", DNA.Fold('G'))
	}
}

func TestComplement(t *testing.T) {

	pairs := []struct {
		sym, want byte
	}{
		{'A', 'T'},
		{'t', 'a'},
		{'C', 'G'},
		{'R', 'Y'},
		{'n', 'n'},
		{'-', '-'},
	}
	for _, tc := range pairs {
		got, ok := DNA.Complement(tc.sym)
		if !ok || got != tc.want {
			t.Errorf("DNA.Complement(%q) = %q %v, want %q", tc.sym, got, ok, tc.want)
		}
	}

	if got, ok := RNA.Complement('A'); !ok || got != 'U' {
		t.Errorf("RNA.Complement(A) = %q %v", got, ok)
	}

	if _, ok := Protein.Complement('M'); ok {
		t.Errorf("protein complement should not be supported")
	}
}

func TestGapAndAmbiguity(t *testing.T) {

	gaps := DNA.GapSymbols()
	if len(gaps) != 1 || gaps[0] != '-' {
		t.Errorf("unexpected gap set %q", gaps)
	}

	exp, ok := DNA.AmbiguousExpansion('M')
	if !ok || string(exp) != "AC" {
		t.Errorf("expansion of M = %q %v", exp, ok)
	}
	exp, ok = DNA.AmbiguousExpansion('n')
	if !ok || string(exp) != "ACGT" {
		t.Errorf("expansion of n = %q %v", exp, ok)
	}
	if _, ok := DNA.AmbiguousExpansion('A'); ok {
		t.Errorf("A should have no expansion")
	}

	exp, ok = RNA.AmbiguousExpansion('K')
	if !ok || string(exp) != "GU" {
		t.Errorf("RNA expansion of K = %q %v", exp, ok)
	}
}

func TestConsensusUnsupported(t *testing.T) {

	_, err := DNA.GetConsensus([]byte("ACGT"))
	var perr *ParseError
	if err == nil || !asParseError(err, &perr) || perr.Kind != ErrUnsupported {
		t.Fatalf("GetConsensus error = %v, want Unsupported", err)
	}
}
