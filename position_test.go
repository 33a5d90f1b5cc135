package insdc

import (
	"testing"
)

func TestParsePosition(t *testing.T) {

	tests := []struct {
		text   string
		offset int
		kind   PositionKind
		pos    int
	}{
		{"12", -1, ExactPosition, 11},
		{"12", 0, ExactPosition, 12},
		{"?", -1, UnknownPosition, 0},
		{"?", 0, UnknownPosition, 0},
		{"?22", -1, UncertainPosition, 21},
		{"?22", 0, UncertainPosition, 22},
		{"<13", -1, BeforePosition, 12},
		{">13", 0, AfterPosition, 13},
		{"(3.9)", -1, WithinPosition, 2},
		{"(3.9)", 0, WithinPosition, 9},
		{"one-of(5,7,11)", -1, OneOfPosition, 4},
		{"one-of(5,7,11)", 0, OneOfPosition, 11},
	}

	for _, tc := range tests {
		pos, err := ParsePosition(tc.text, tc.offset)
		if err != nil {
			t.Errorf("ParsePosition(%q, %d): %v", tc.text, tc.offset, err)
			continue
		}
		if pos.Kind != tc.kind || pos.MonomerPosition() != tc.pos {
			t.Errorf("ParsePosition(%q, %d) = kind %d pos %d, want kind %d pos %d",
				tc.text, tc.offset, pos.Kind, pos.MonomerPosition(), tc.kind, tc.pos)
		}
	}
}

func TestParsePositionWithinBounds(t *testing.T) {

	pos, err := ParsePosition("(3.9)", -1)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Low != 2 || pos.High != 8 {
		t.Errorf("within bounds = (%d, %d), want (2, 8)", pos.Low, pos.High)
	}
}

func TestParsePositionOneOfChoices(t *testing.T) {

	pos, err := ParsePosition("one-of(5,7,11)", -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 6, 10}
	if len(pos.Choices) != len(want) {
		t.Fatalf("choices = %v", pos.Choices)
	}
	for i, ch := range want {
		if pos.Choices[i] != ch {
			t.Errorf("choice %d = %d, want %d", i, pos.Choices[i], ch)
		}
	}
}

func TestParsePositionErrors(t *testing.T) {

	for _, text := range []string{"", "abc", "<x", "(3.)", "one-of(5)", "12..13"} {
		if _, err := ParsePosition(text, 0); err == nil {
			t.Errorf("ParsePosition(%q) should fail", text)
		}
	}

	if _, err := ParsePosition("12", 5); err == nil {
		t.Errorf("offset other than 0 or -1 should fail")
	}
}

func TestPositionOrdering(t *testing.T) {

	before, _ := ParsePosition("<10", -1)
	exact, _ := ParsePosition("10", -1)
	after, _ := ParsePosition(">10", -1)

	if before.MonomerPosition() != exact.MonomerPosition() ||
		exact.MonomerPosition() != after.MonomerPosition() {
		t.Errorf("fuzzy positions around 10 should share the monomer position")
	}
}
