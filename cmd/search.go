package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/logging"
	"github.com/grovetools/jwtview/pkg/document"
	"github.com/grovetools/jwtview/pkg/profiling"
	"github.com/grovetools/jwtview/pkg/render"
	"github.com/grovetools/jwtview/pkg/search"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const snippetWidth = 72

// SearchResult is one occurrence in the decoded document. Line and Column
// are one-based; Column counts bytes.
type SearchResult struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Match   string `json:"match"`
	Snippet string `json:"snippet"`
}

// SearchOutput is the --json form of a search.
type SearchOutput struct {
	Query       string         `json:"query"`
	Count       int            `json:"count"`
	Occurrences []SearchResult `json:"occurrences"`
}

func NewSearchCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "search <query> [token]",
		Short: "List case-insensitive occurrences of a query in a decoded token",
		Long: `Decode a token and list every occurrence of query in the decoded document,
matched case-insensitively and without overlaps.

Examples:
  # Find a claim by name
  jwtview search exp eyJhbGciOiJIUzI1NiJ9.eyJleHAiOjE3MDAwMDAwMDB9.c2ln

  # Machine-readable offsets
  jwtview search --json admin --file token.jwt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			query := args[0]
			if limit := cfg.Search.MaxQueryLength; limit > 0 && len([]rune(query)) > limit {
				return errors.New(errors.ErrCodeInvalidInput,
					fmt.Sprintf("query is longer than %d characters", limit)).
					WithDetail("max_query_length", limit)
			}

			source, err := src.resolve(cmd, argAt(args, 1))
			if err != nil {
				return err
			}
			decoded, err := token.Load(source)
			if err != nil {
				return err
			}
			doc := document.Build(decoded)
			results := FindOccurrences(doc, query)
			cli.GetLogger(cmd, "search").WithField("occurrences", len(results)).Debug("Searched token")

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				if results == nil {
					results = []SearchResult{}
				}
				data, err := json.MarshalIndent(SearchOutput{Query: query, Count: len(results), Occurrences: results}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal occurrences: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(results) == 0 {
				logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).
					WarnPretty(errors.Message(errors.NoOccurrences(query)))
				return nil
			}
			th := theme.ForConfig(cfg)
			for i, r := range results {
				fmt.Fprintf(out, "%s %s  %s\n",
					th.Muted.Render(fmt.Sprintf("[%d/%d]", i+1, len(results))),
					th.Accent.Render(fmt.Sprintf("%d:%d", r.Line, r.Column)),
					highlightSnippet(r, th))
			}
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

// FindOccurrences searches doc for query and locates each occurrence.
func FindOccurrences(doc *document.Document, query string) []SearchResult {
	defer profiling.Start("search").Stop()

	occurrences := search.Search(doc.Text(), query)
	if len(occurrences) == 0 {
		return nil
	}
	text := doc.Text()
	lines := doc.Lines()

	results := make([]SearchResult, 0, len(occurrences))
	for _, o := range occurrences {
		line := doc.LineOf(o.Start)
		lineStart := strings.LastIndexByte(text[:o.Start], '\n') + 1
		results = append(results, SearchResult{
			Start:   o.Start,
			End:     o.End,
			Line:    line + 1,
			Column:  o.Start - lineStart + 1,
			Match:   text[o.Start:o.End],
			Snippet: lines[line],
		})
	}
	return results
}

// highlightSnippet trims and truncates the result's line, marking the match
// when it is still visible.
func highlightSnippet(r SearchResult, th *theme.Theme) string {
	trimmed := strings.TrimLeft(r.Snippet, " \t")
	col := r.Column - 1 - (len(r.Snippet) - len(trimmed))
	snippet := runewidth.Truncate(trimmed, snippetWidth, "…")

	end := col + len(r.Match)
	if col < 0 || end > len(snippet) || snippet[col:end] != r.Match {
		return snippet
	}
	return render.Apply(snippet, []render.Directive{{Start: col, End: end, Style: render.Current}}, th)
}
