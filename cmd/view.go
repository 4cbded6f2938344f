package cmd

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/document"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/pkg/watch"
	"github.com/grovetools/jwtview/tui"
	"github.com/grovetools/jwtview/tui/components/tokenview"
	"github.com/grovetools/jwtview/tui/keymap"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// viewOptions are the flags of the interactive viewer. They are registered on
// both the root command and the view subcommand.
type viewOptions struct {
	src   sourceFlags
	watch bool
	wrap  bool
}

func (o *viewOptions) register(cmd *cobra.Command) {
	o.src.register(cmd)
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "Reload when the --file token changes")
	cmd.Flags().BoolVar(&o.wrap, "wrap", false, "Soft-wrap long lines")
}

func NewViewCmd() *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "view [token]",
		Short: "Open a token in the interactive viewer",
		Long: `Open a decoded token in a scrollable, searchable viewer.

Press / to search; every keystroke updates the matches. enter or n jumps to
the next match and N to the previous one, wrapping at either end. y copies
the document, esc clears the search and q quits.

Examples:
  # View the token on the clipboard
  jwtview view

  # Follow a token file as it is rewritten
  jwtview view --file token.jwt --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: opts.run,
	}

	opts.register(cmd)
	return cmd
}

func (o *viewOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cli.GetLogger(cmd, "viewer")

	if o.watch && (o.src.file == "" || argAt(args, 0) != "") {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs a token file given with --file")
	}
	source, err := o.src.resolve(cmd, argAt(args, 0))
	if err != nil {
		return err
	}

	store := document.NewStore(0, logger)
	entry, _, err := store.Load(source)
	if err != nil {
		return err
	}

	overrides, err := keymap.FromConfig(cfg)
	if err != nil {
		logger.WithError(err).Warn("Ignoring invalid 'keys' config")
	}
	keys := tokenview.DefaultKeyMap().WithOverrides(overrides)

	tui.InitializeTUI()
	model := tokenview.New(entry.Document, tokenview.Options{
		Title:          source.Name(),
		MaxQueryLength: cfg.Search.MaxQueryLength,
		Wrap:           cfg.Viewer.Wrap || o.wrap,
		Width:          cfg.Viewer.Width,
		Height:         cfg.Viewer.Height,
		Theme:          theme.ForConfig(cfg),
		Keys:           &keys,
		Logger:         logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if file, ok := source.(token.FileSource); ok && o.watch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		r := &reloader{p: p, store: store, source: source, logger: logger, current: entry.Document}
		w, err := startReloader(ctx, r, file.Path, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	_, err = p.Run()
	return err
}

// sender is the part of tea.Program the reloader needs.
type sender interface {
	Send(msg tea.Msg)
}

// reloader sends the viewer a ReloadMsg for every new token read from its
// source, or an ErrorMsg when the source stops holding one. Rewrites that
// leave the shown token unchanged send nothing.
type reloader struct {
	p      sender
	store  *document.Store
	source token.Source
	logger *logrus.Entry

	mu      sync.Mutex
	current *document.Document
}

func (r *reloader) reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, _, err := r.store.Load(r.source)
	if err != nil {
		r.logger.WithError(err).Debug("Reload failed")
		r.p.Send(tokenview.ErrorMsg{Err: err})
		return
	}
	if entry.Document == r.current {
		return
	}
	r.current = entry.Document
	r.p.Send(tokenview.ReloadMsg{Document: entry.Document, Source: r.source.Name()})
}

// startReloader watches the token file in the background and reloads on
// every settled change until ctx is cancelled.
func startReloader(ctx context.Context, r *reloader, path string, debounce time.Duration) (*watch.FileWatcher, error) {
	w, err := watch.NewFileWatcher(path, debounce, func(string) { r.reload() })
	if err != nil {
		return nil, err
	}
	go w.Start(ctx)
	return w, nil
}
