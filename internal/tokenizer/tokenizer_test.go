package tokenizer

import (
	"strings"
	"testing"
)

// stubCounter counts whitespace-separated words for offline tests.
type stubCounter struct{}

func (counter stubCounter) Name() string {
	return "stub"
}

func (counter stubCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

// TestCountText verifies counting through a Counter implementation.
func TestCountText(testingHandle *testing.T) {
	countResult, countError := CountText(stubCounter{}, "three short words")
	if countError != nil {
		testingHandle.Fatalf("CountText failed: %v", countError)
	}
	if !countResult.Counted || countResult.Tokens != 3 {
		testingHandle.Fatalf("unexpected count result: %+v", countResult)
	}
}

// TestCountTextSkipsInvalidUTF8 verifies that malformed content is reported
// as uncounted rather than failing.
func TestCountTextSkipsInvalidUTF8(testingHandle *testing.T) {
	countResult, countError := CountText(stubCounter{}, string([]byte{0xff, 0xfe}))
	if countError != nil {
		testingHandle.Fatalf("CountText failed: %v", countError)
	}
	if countResult.Counted {
		testingHandle.Fatalf("expected malformed content to be uncounted")
	}
}

// TestCountTextNilCounter verifies the nil counter error path.
func TestCountTextNilCounter(testingHandle *testing.T) {
	if _, countError := CountText(nil, "content"); countError == nil {
		testingHandle.Fatalf("expected an error for a nil counter")
	}
}
