package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Terminal access is swapped out in tests.
var (
	stdin           io.Reader = os.Stdin
	stdinIsTerminal           = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	readPassword = func() ([]byte, error) {
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

// sourceFlags are the token source flags shared by decode, view and search.
type sourceFlags struct {
	file      string
	clipboard bool
	prompt    bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the token from a file")
	cmd.Flags().BoolVar(&f.clipboard, "clipboard", false, "Read the token from the system clipboard")
	cmd.Flags().BoolVar(&f.prompt, "prompt", false, "Prompt for the token without echoing it")
}

// resolve picks the token source: an argument, then --file, then --prompt or
// --clipboard when asked for, then piped stdin. With nothing else to read,
// the clipboard is used. An argument of "-" reads stdin.
func (f *sourceFlags) resolve(cmd *cobra.Command, arg string) (token.Source, error) {
	switch {
	case arg == "-":
		return token.ReaderSource{Label: "stdin", Reader: stdin}, nil
	case arg != "":
		return token.StringSource(arg), nil
	case f.file != "":
		path, err := pathutil.Expand(f.file)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid token file path").
				WithDetail("path", f.file)
		}
		return token.FileSource{Path: path}, nil
	case f.prompt:
		return promptSource(cmd)
	case f.clipboard:
		return token.ClipboardSource{}, nil
	case !stdinIsTerminal():
		return token.ReaderSource{Label: "stdin", Reader: stdin}, nil
	default:
		return token.ClipboardSource{}, nil
	}
}

// promptSource reads one token from the terminal with echo turned off. When
// stdin is not a terminal the first line is read instead.
func promptSource(cmd *cobra.Command) (token.Source, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
	defer fmt.Fprintln(cmd.ErrOrStderr())

	if !stdinIsTerminal() {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read token: %w", err)
		}
		return token.StringSource(strings.TrimSpace(line)), nil
	}

	data, err := readPassword()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read token from terminal")
	}
	return token.StringSource(strings.TrimSpace(string(data))), nil
}

// argAt returns args[i], or "" when it is absent.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
