package insdc

import (
	"testing"
)

func TestTunings(t *testing.T) {

	SetTunings(2, 4, 8, 600)
	t.Cleanup(func() { SetTunings(0, 0, 0, 0) })

	if NumServe() != 4 {
		t.Errorf("NumServe = %d", NumServe())
	}
	if ChanDepth() < 1 {
		t.Errorf("ChanDepth = %d", ChanDepth())
	}
}

func TestOptions(t *testing.T) {

	SetOptions(false, true, false)
	t.Cleanup(func() { SetOptions(true, false, true) })

	validate, strict, caseSensitive := GetOptions()
	if validate || !strict || caseSensitive {
		t.Errorf("options = %v %v %v", validate, strict, caseSensitive)
	}
}

func TestWarnerHook(t *testing.T) {

	msgs := captureWarnings(t)

	Warner("count %d", 7)

	if len(*msgs) != 1 || (*msgs)[0] != "count 7" {
		t.Errorf("messages = %q", *msgs)
	}
}
