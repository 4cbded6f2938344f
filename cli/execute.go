package cli

import (
	"github.com/grovetools/jwtview/errors"
	"github.com/spf13/cobra"
)

// Execute runs root and reports a failure the way the user can act on it:
// coded errors go through the ErrorHandler, anything else (usually a flag or
// argument mistake) is printed with a pointer to --help.
func Execute(root *cobra.Command) error {
	ApplyStyledHelpRecursive(root)

	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}
	if errors.GetCode(err) != "" {
		handler := NewErrorHandler(GetOptions(cmd).Verbose)
		handler.Out = cmd.ErrOrStderr()
		return handler.Handle(err)
	}
	PrintError(cmd, err)
	return err
}
