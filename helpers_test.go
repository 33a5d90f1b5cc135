package insdc

import (
	"errors"
	"fmt"
	"testing"
)

func asParseError(err error, target **ParseError) bool {

	return errors.As(err, target)
}

// wantKind fails the test unless the error carries the expected category
func wantKind(t *testing.T, err error, kind ErrKind) {

	t.Helper()

	var perr *ParseError
	if err == nil || !errors.As(err, &perr) {
		t.Fatalf("error = %v, want %s", err, kind)
	}
	if perr.Kind != kind {
		t.Fatalf("error kind = %s, want %s (%v)", perr.Kind, kind, err)
	}
}

// captureWarnings silences the warning sink and records the messages
func captureWarnings(t *testing.T) *[]string {

	t.Helper()

	var msgs []string
	old := Warner
	Warner = func(format string, args ...interface{}) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { Warner = old })

	return &msgs
}
