package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/jwtview/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))
		fmt.Fprintf(out, "Create a jwtview.yml or drop the --config flag to use the defaults.\n")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))
		fmt.Fprintf(out, "Run 'jwtview config schema' to see the accepted settings.\n")

	case errors.ErrCodeTokenMalformed:
		fmt.Fprintf(out, "❌ Not a token: %s\n", errors.Message(err))
		fmt.Fprintf(out, "A token has the form header.payload.signature.\n")

	case errors.ErrCodeSegmentDecode, errors.ErrCodeJSONInvalid, errors.ErrCodePayloadNotObject:
		fmt.Fprintf(out, "❌ Could not decode token: %s\n", errors.Message(err))

	case errors.ErrCodeClipboardUnavailable:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))
		fmt.Fprintf(out, "Pass the token as an argument, with --file, or on stdin.\n")

	case errors.ErrCodeInvalidInput:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose {
		if e, ok := err.(*errors.Error); ok {
			fmt.Fprintf(out, "\nError details:\n%s\n", e.ToJSON())
			if e.Cause != nil {
				fmt.Fprintf(out, "Caused by: %v\n", e.Cause)
			}
		}
	}
	return err
}
