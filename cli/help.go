package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// HelpExtrasFunc renders additional help sections to out.
type HelpExtrasFunc func(out io.Writer, t *theme.Theme)

var (
	helpExtras   = make(map[*cobra.Command]HelpExtrasFunc)
	helpExtrasMu sync.RWMutex
)

const (
	helpMaxWidth = 72
	helpMinWidth = 40
)

// helpWidth is the text width of help pages: the terminal width, clamped.
func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < helpMinWidth {
		return helpMaxWidth
	}
	return min(width, helpMaxWidth)
}

// wrapText word-wraps each paragraph of text to width cells. Existing line
// breaks are kept and words longer than width get a line of their own.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = helpMaxWidth
	}
	var b strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		col := 0
		for _, word := range strings.Fields(paragraph) {
			w := ansi.StringWidth(word)
			switch {
			case col == 0:
			case col+1+w > width:
				b.WriteByte('\n')
				col = 0
			default:
				b.WriteByte(' ')
				col++
			}
			b.WriteString(word)
			col += w
		}
	}
	return b.String()
}

// SetStyledHelp applies the themed help layout to cmd.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive applies styled help to cmd and every subcommand
// and silences cobra's usage dump, which Execute replaces with a hint.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// SetStyledHelpWithExtras applies the themed help layout to cmd and renders
// extras after its examples.
func SetStyledHelpWithExtras(cmd *cobra.Command, extras HelpExtrasFunc) {
	helpExtrasMu.Lock()
	helpExtras[cmd] = extras
	helpExtrasMu.Unlock()
	cmd.SetHelpFunc(styledHelpFunc)
}

// PrintError prints err to stderr with a pointer to the command's help.
func PrintError(cmd *cobra.Command, err error) {
	t := theme.DefaultTheme
	red := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Red)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red.Render("Error:"), err.Error())
	fmt.Fprintln(cmd.ErrOrStderr(), t.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// parseDescription splits a long description at its "Examples:" heading.
func parseDescription(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if before, after, ok := strings.Cut(long, marker); ok {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return long, ""
}

// helpPrinter writes one command's help page, one section at a time.
type helpPrinter struct {
	out   io.Writer
	theme *theme.Theme
	width int

	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	italic  lipgloss.Style
}

func newHelpPrinter(out io.Writer, t *theme.Theme, width int) *helpPrinter {
	return &helpPrinter{
		out:     out,
		theme:   t,
		width:   width,
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange),
		heading: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
		italic:  lipgloss.NewStyle().Italic(true),
	}
}

func (p *helpPrinter) line(s string) {
	fmt.Fprintf(p.out, " %s\n", s)
}

func (p *helpPrinter) section(name string) {
	fmt.Fprintln(p.out)
	p.line(p.heading.Render(name))
}

func (p *helpPrinter) paragraph(text string, style lipgloss.Style) {
	for _, l := range strings.Split(wrapText(text, p.width), "\n") {
		p.line(style.Render(l))
	}
}

func (p *helpPrinter) header(cmd *cobra.Command) {
	p.line(p.title.Render(strings.ToUpper(cmd.CommandPath())))
	if cmd.Short != "" {
		p.paragraph(cmd.Short, p.italic)
	}
	description, _ := parseDescription(cmd.Long)
	if description != "" && description != cmd.Short {
		fmt.Fprintln(p.out)
		p.paragraph(description, lipgloss.NewStyle())
	}
}

func (p *helpPrinter) usage(cmd *cobra.Command) {
	if !cmd.Runnable() && !cmd.HasSubCommands() {
		return
	}
	p.section("USAGE")
	if cmd.Runnable() {
		p.line(cmd.UseLine())
	}
	if cmd.HasSubCommands() {
		p.line(cmd.CommandPath() + " [command]")
	}
}

func (p *helpPrinter) commands(cmd *cobra.Command) {
	var subs []*cobra.Command
	pad := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, sub)
			pad = max(pad, len(sub.Name()))
		}
	}
	if len(subs) == 0 {
		return
	}
	p.section("COMMANDS")
	for _, sub := range subs {
		p.line(fmt.Sprintf("%s%s  %s", p.name.Render(sub.Name()), strings.Repeat(" ", pad-len(sub.Name())), sub.Short))
	}
}

// flags lists a leaf command's local flags in full. Commands with
// subcommands get a single compact line instead.
func (p *helpPrinter) flags(cmd *cobra.Command) {
	var visible []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visible = append(visible, f)
		}
	})
	if len(visible) == 0 {
		return
	}

	if cmd.HasAvailableSubCommands() {
		names := make([]string, len(visible))
		for i, f := range visible {
			names[i] = "--" + f.Name
			if f.Shorthand != "" {
				names[i] = "-" + f.Shorthand + "/" + names[i]
			}
		}
		fmt.Fprintln(p.out)
		p.paragraph("Flags: "+strings.Join(names, ", "), p.theme.Muted)
		return
	}

	p.section("FLAGS")
	pad := 0
	for _, f := range visible {
		pad = max(pad, len(flagName(f)))
	}
	for _, f := range visible {
		name := flagName(f)
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += p.theme.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		p.line(fmt.Sprintf("%s%s  %s", p.flag.Render(name), strings.Repeat(" ", pad-len(name)), usage))
	}
}

// examples prints cmd.Example, or the examples trailing cmd.Long. Comment
// lines are muted.
func (p *helpPrinter) examples(cmd *cobra.Command) {
	text := cmd.Example
	if text == "" {
		_, text = parseDescription(cmd.Long)
	}
	if text == "" {
		return
	}
	p.section("EXAMPLES")
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		switch {
		case l == "":
			fmt.Fprintln(p.out)
		case strings.HasPrefix(l, "#"):
			p.line(p.theme.Muted.Render(l))
		default:
			p.line("  " + l)
		}
	}
}

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	p := newHelpPrinter(cmd.OutOrStdout(), theme.DefaultTheme, helpWidth()-2)
	p.header(cmd)
	p.usage(cmd)
	p.commands(cmd)
	p.flags(cmd)
	p.examples(cmd)

	helpExtrasMu.RLock()
	extras := helpExtras[cmd]
	helpExtrasMu.RUnlock()
	if extras != nil {
		extras(p.out, p.theme)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(p.out, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// flagName formats f as "-f, --flag", aligning long-only flags.
func flagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return "    --" + f.Name
}
