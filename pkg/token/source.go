package token

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/profiling"
)

// Source yields the raw text of a token.
type Source interface {
	// Name describes the source for logs and messages.
	Name() string
	Read() (string, error)
}

// StringSource is a token given directly, e.g. as a command-line argument.
type StringSource string

func (s StringSource) Name() string          { return "argument" }
func (s StringSource) Read() (string, error) { return string(s), nil }

// ReaderSource reads the whole token from a reader such as piped stdin.
type ReaderSource struct {
	Label  string
	Reader io.Reader
}

func (s ReaderSource) Name() string { return s.Label }

func (s ReaderSource) Read() (string, error) {
	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.Label, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// FileSource reads the token from a file on every call, so a watched file
// yields its latest contents.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "token file not found").
				WithDetail("path", s.Path)
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clipboard access is swapped out in tests.
var (
	clipboardRead        = clipboard.ReadAll
	clipboardWrite       = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// ClipboardSource reads the token from the system clipboard.
type ClipboardSource struct{}

func (ClipboardSource) Name() string { return "clipboard" }

func (ClipboardSource) Read() (string, error) {
	if clipboardUnsupported() {
		return "", errors.ClipboardUnavailable(fmt.Errorf("no clipboard utility found"))
	}
	text, err := clipboardRead()
	if err != nil {
		return "", errors.ClipboardUnavailable(err)
	}
	return strings.TrimSpace(text), nil
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboardUnsupported() {
		return errors.ClipboardUnavailable(fmt.Errorf("no clipboard utility found"))
	}
	if err := clipboardWrite(text); err != nil {
		return errors.ClipboardUnavailable(err)
	}
	return nil
}

// Load reads from src and decodes the result.
func Load(src Source) (*Decoded, error) {
	timer := profiling.Start("read " + src.Name())
	raw, err := src.Read()
	timer.Stop()
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}
