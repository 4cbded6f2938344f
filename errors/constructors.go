package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// TokenMalformed reports a token that does not have three dot-separated segments.
func TokenMalformed(segments int) *Error {
	return New(ErrCodeTokenMalformed,
		fmt.Sprintf("expected 3 dot-separated segments, found %d", segments)).
		WithDetail("segments", segments)
}

// SegmentDecode reports a segment that is not valid base64url.
func SegmentDecode(segment string, err error) *Error {
	return Wrap(err, ErrCodeSegmentDecode, fmt.Sprintf("%s segment is not valid base64url", segment)).
		WithDetail("segment", segment)
}

// JSONInvalid reports a decoded segment that is not valid JSON.
func JSONInvalid(segment string, err error) *Error {
	return Wrap(err, ErrCodeJSONInvalid, fmt.Sprintf("%s segment is not valid JSON", segment)).
		WithDetail("segment", segment)
}

// PayloadNotObject reports a payload whose top-level JSON value is not an object.
func PayloadNotObject(kind string) *Error {
	return New(ErrCodePayloadNotObject, fmt.Sprintf("payload must be a JSON object, got %s", kind)).
		WithDetail("kind", kind)
}

// ClipboardUnavailable wraps a failure to read or write the system clipboard.
func ClipboardUnavailable(err error) *Error {
	return Wrap(err, ErrCodeClipboardUnavailable, "system clipboard is not available")
}

// NoOccurrences is the notice returned when navigating an empty result set.
func NoOccurrences(query string) *Error {
	return New(ErrCodeNoOccurrences, "No occurrences found.").
		WithDetail("query", query)
}
