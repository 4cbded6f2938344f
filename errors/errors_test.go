package errors

import (
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeTokenMalformed, "bad token")
	if err.Code != ErrCodeTokenMalformed {
		t.Errorf("expected code %s, got %s", ErrCodeTokenMalformed, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeSegmentDecode, "decode failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeSegmentDecode) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeTokenMalformed) {
		t.Error("Is should return false for non-matching code")
	}

	// Test codes through fmt.Errorf wrapping
	outer := fmt.Errorf("loading: %w", wrapped)
	if GetCode(outer) != ErrCodeSegmentDecode {
		t.Errorf("expected code to survive wrapping, got %q", GetCode(outer))
	}

	detailed := err.WithDetail("segments", 2)
	if detailed.Details["segments"] != 2 {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := TokenMalformed(2)
	if err.Code != ErrCodeTokenMalformed {
		t.Errorf("expected code %s, got %s", ErrCodeTokenMalformed, err.Code)
	}
	if err.Details["segments"] != 2 {
		t.Error("TokenMalformed should include segments detail")
	}

	err = NoOccurrences("foo")
	if err.Code != ErrCodeNoOccurrences {
		t.Errorf("expected code %s, got %s", ErrCodeNoOccurrences, err.Code)
	}
	if Message(err) != "No occurrences found." {
		t.Errorf("unexpected notice message %q", Message(err))
	}

	err = PayloadNotObject("array")
	if err.Details["kind"] != "array" {
		t.Error("PayloadNotObject should include kind detail")
	}
}

func TestGetCodeNil(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) should be false")
	}
	if Is(fmt.Errorf("plain"), "") {
		t.Error("Is should never match the empty code")
	}
}
