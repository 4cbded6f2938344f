// Package cmd implements the jwtview command tree.
package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/pkg/profiling"
	"github.com/grovetools/jwtview/tui/components/tokenview"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the jwtview command. Run without a subcommand it opens
// the viewer, so "jwtview <token>" and "jwtview view <token>" are the same.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"jwtview [token]",
		"Decode, search and browse JSON Web Tokens",
	)
	root.Long = `Decode a JSON Web Token and browse its header and payload.

The token is read from the argument, --file, piped stdin or, failing those,
the system clipboard. Signatures are displayed but never verified.

Examples:
  # Open the token on the clipboard in the viewer
  jwtview

  # Decode without the viewer
  jwtview decode --file token.jwt`

	var view viewOptions
	view.register(root)
	root.Args = cobra.MaximumNArgs(1)
	root.RunE = view.run
	cli.SetVersionTemplate(root)
	cli.SetStyledHelpWithExtras(root, viewerKeysHelp)
	profiling.NewCobraProfiler().AddFlags(root)

	root.AddCommand(NewViewCmd())
	root.AddCommand(NewDecodeCmd())
	root.AddCommand(NewSearchCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(cli.NewVersionCommand("jwtview"))

	return root
}

// viewerKeysHelp lists the viewer's default bindings on the root help page.
func viewerKeysHelp(out io.Writer, t *theme.Theme) {
	heading := lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange)
	fmt.Fprintf(out, "\n %s\n", heading.Render("VIEWER KEYS"))
	for _, group := range tokenview.DefaultKeyMap().FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(out, " %s  %s\n", t.Accent.Render(fmt.Sprintf("%-8s", h.Key)), h.Desc)
		}
	}
}
