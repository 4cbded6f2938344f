package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/pkg/document"
	"github.com/grovetools/jwtview/pkg/render"
	"github.com/grovetools/jwtview/pkg/search"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/spf13/cobra"
)

// DecodeOutput is the --json form of a decoded token.
type DecodeOutput struct {
	Header      json.RawMessage    `json:"header"`
	Payload     json.RawMessage    `json:"payload"`
	Signature   string             `json:"signature"`
	Annotations []token.Annotation `json:"annotations,omitempty"`
}

func NewDecodeCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "decode [token]",
		Short: "Decode a token and print its header and payload",
		Long: `Decode a token and print the highlighted header and payload.

The signature is shown as-is and never verified. Numeric iat, exp and nbf
claims are annotated with their UTC time above the payload.

Examples:
  # Decode a token passed as an argument
  jwtview decode eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.c2ln

  # Decode from a file and print JSON
  jwtview decode --file token.jwt --json

  # Decode from a pipe
  pbpaste | jwtview decode`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger := cli.GetLogger(cmd, "decode")

			source, err := src.resolve(cmd, argAt(args, 0))
			if err != nil {
				return err
			}
			decoded, err := token.Load(source)
			if err != nil {
				return err
			}
			logger.WithField("source", source.Name()).Debug("Decoded token")

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(DecodeOutput{
					Header:      json.RawMessage(decoded.Header),
					Payload:     json.RawMessage(decoded.Payload),
					Signature:   decoded.Signature,
					Annotations: decoded.Annotations,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal token: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			doc := document.Build(decoded)
			fmt.Fprintln(out, render.Apply(doc.Text(), render.Document(doc, search.NewState()), theme.ForConfig(cfg)))
			return nil
		},
	}

	src.register(cmd)
	return cmd
}
