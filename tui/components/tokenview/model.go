// Package tokenview is the Bubble Tea viewer for a decoded token document:
// a scrolling, syntax-highlighted view with incremental search.
package tokenview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/document"
	"github.com/grovetools/jwtview/pkg/render"
	"github.com/grovetools/jwtview/pkg/search"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/tui/theme"
	"github.com/grovetools/jwtview/tui/utils/scrollbar"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

// noticeTTL is how long a transient notice stays in the status line.
const noticeTTL = 2 * time.Second

// chromeHeight is the number of rows used by the title, status and help lines.
const chromeHeight = 3

// scrollbarWidth is the column reserved right of the document.
const scrollbarWidth = 1

// Options configures a Model.
type Options struct {
	// Title names the token source in the title line.
	Title string
	// MaxQueryLength limits the search input; zero means unlimited.
	MaxQueryLength int
	// Wrap soft-wraps lines wider than the viewer.
	Wrap bool
	// Width and Height pin the viewer size; zero follows the terminal.
	Width  int
	Height int

	Theme  *theme.Theme
	Keys   *KeyMap
	Logger *logrus.Entry

	// Copy writes to the clipboard; token.CopyToClipboard when nil.
	Copy func(text string) error
}

// ReloadMsg replaces the viewed document, for example after the watched
// token file changed. The active query is searched again on the new text.
type ReloadMsg struct {
	Document *document.Document
	Source   string
}

// ErrorMsg reports a failure to show in the status line, such as a reload
// of a file that no longer holds a valid token.
type ErrorMsg struct {
	Err error
}

// searchResultMsg carries a computed search state. Results whose generation
// is not the latest are discarded.
type searchResultMsg struct {
	generation int
	state      search.State
}

type copiedMsg struct {
	err error
}

type clearNoticeMsg struct {
	id int
}

// Model is the Bubble Tea model for the token viewer.
type Model struct {
	doc   *document.Document
	state search.State
	opts  Options
	keys  KeyMap
	theme *theme.Theme
	log   *logrus.Entry

	viewport viewport.Model
	input    textinput.Model
	help     help.Model

	width  int
	height int
	ready  bool

	searching  bool
	generation int

	notice      string
	noticeStyle lipgloss.Style
	noticeID    int
}

// New creates a viewer for doc.
func New(doc *document.Document, opts Options) Model {
	th := opts.Theme
	if th == nil {
		th = theme.DefaultTheme
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Copy == nil {
		opts.Copy = token.CopyToClipboard
	}

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/"
	ti.CharLimit = opts.MaxQueryLength
	ti.Width = 30
	ti.PromptStyle = th.Accent
	ti.TextStyle = th.Input
	ti.PlaceholderStyle = th.Placeholder
	ti.Cursor.Style = th.Cursor

	h := help.New()
	h.Styles.ShortKey = th.Accent
	h.Styles.ShortDesc = th.Muted
	h.Styles.FullKey = th.Accent
	h.Styles.FullDesc = th.Muted

	return Model{
		doc:   doc,
		state: search.NewState(),
		opts:  opts,
		keys:  keys,
		theme: th,
		log:   log,
		input: ti,
		help:  h,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Document returns the document being viewed.
func (m Model) Document() *document.Document { return m.doc }

// State returns the current search state.
func (m Model) State() search.State { return m.state }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searching }

// Notice returns the transient status message, if any.
func (m Model) Notice() string { return m.notice }

// SetSize sets the size of the whole viewer, including its chrome.
func (m *Model) SetSize(width, height int) {
	if m.opts.Width > 0 && m.opts.Width < width {
		width = m.opts.Width
	}
	if m.opts.Height > 0 && m.opts.Height < height {
		height = m.opts.Height
	}
	m.width = width
	m.height = height
	m.help.Width = width

	vw := max(width-scrollbarWidth, 1)
	vh := max(height-chromeHeight, 1)
	if m.ready {
		m.viewport.Width = vw
		m.viewport.Height = vh
	} else {
		m.viewport = viewport.New(vw, vh)
		m.viewport.KeyMap = viewport.KeyMap{}
		m.ready = true
	}
	m.refresh()
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.scrollToCurrent()
		return m, nil

	case searchResultMsg:
		if msg.generation != m.generation {
			m.log.WithField("generation", msg.generation).Debug("Discarding stale search result")
			return m, nil
		}
		m.state = msg.state
		m.refresh()
		m.scrollToCurrent()
		return m, nil

	case ReloadMsg:
		if msg.Document == nil {
			return m, nil
		}
		// Occurrences index into the document, so both are replaced together
		// and any search still in flight for the old document is dropped.
		m.generation++
		m.doc = msg.Document
		m.state = search.Compute(m.doc.Text(), m.state.Query)
		m.refresh()
		m.scrollToCurrent()
		return m, m.setNotice(fmt.Sprintf("%s Reloaded %s", theme.IconReload, msg.Source), m.theme.Info)

	case ErrorMsg:
		return m, m.setNotice(errors.Message(msg.Err), m.theme.Error)

	case copiedMsg:
		if msg.err != nil {
			return m, m.setNotice("Copy failed: "+errors.Message(msg.err), m.theme.Error)
		}
		return m, m.setNotice(theme.IconClipboard+" Copied document to clipboard", m.theme.Success)

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearchInput(msg)
		}
		return m.updateNormal(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.advance()
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != before {
		return m, tea.Batch(cmd, m.startSearch(query))
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.state.Query)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		return m, m.advance()

	case key.Matches(msg, m.keys.PrevMatch):
		return m, m.retreat()

	case key.Matches(msg, m.keys.ClearSearch):
		m.generation++
		m.state = search.NewState()
		m.input.SetValue("")
		m.notice = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.opts.Copy, m.doc.Text())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.ScrollUp(max(m.viewport.Height/2, 1))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.ScrollDown(max(m.viewport.Height/2, 1))
	case key.Matches(msg, m.keys.GotoTop):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.GotoEnd):
		m.viewport.GotoBottom()
	}
	return m, nil
}

// startSearch schedules a search for query on the current document. Every
// call supersedes the ones before it.
func (m *Model) startSearch(query string) tea.Cmd {
	m.generation++
	gen := m.generation
	text := m.doc.Text()
	return func() tea.Msg {
		return searchResultMsg{generation: gen, state: search.Compute(text, query)}
	}
}

func (m *Model) advance() tea.Cmd {
	return m.step(m.state.Advance)
}

func (m *Model) retreat() tea.Cmd {
	return m.step(m.state.Retreat)
}

func (m *Model) step(move func() error) tea.Cmd {
	if err := move(); err != nil {
		return m.setNotice(errors.Message(err), m.theme.Warning)
	}
	m.notice = ""
	m.refresh()
	m.scrollToCurrent()
	return nil
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

// setNotice shows text in the status line until noticeTTL passes or another
// notice replaces it.
func (m *Model) setNotice(text string, style lipgloss.Style) tea.Cmd {
	m.noticeID++
	id := m.noticeID
	m.notice = text
	m.noticeStyle = style
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// refresh repaints the document into the viewport.
func (m *Model) refresh() {
	if !m.ready || m.doc == nil {
		return
	}
	content := render.Apply(m.doc.Text(), render.Document(m.doc, m.state), m.theme)
	if m.opts.Wrap && m.viewport.Width > 0 {
		content = ansi.Hardwrap(content, m.viewport.Width, true)
	}
	m.viewport.SetContent(content)
}

// scrollToCurrent centers the selected occurrence when it is off screen.
func (m *Model) scrollToCurrent() {
	if !m.ready {
		return
	}
	cur, ok := m.state.Selected()
	if !ok {
		return
	}
	row := m.rowOf(cur.Start)
	if row >= m.viewport.YOffset && row < m.viewport.YOffset+m.viewport.Height {
		return
	}
	m.viewport.SetYOffset(max(row-m.viewport.Height/2, 0))
}

// rowOf maps a byte offset to its screen row, accounting for wrapping.
func (m *Model) rowOf(off int) int {
	line := m.doc.LineOf(off)
	if !m.opts.Wrap || m.viewport.Width <= 0 {
		return line
	}
	off = min(max(off, 0), m.doc.Len())
	lines := m.doc.Lines()
	row := 0
	for i := 0; i < line && i < len(lines); i++ {
		row += wrappedRows(lines[i], m.viewport.Width)
	}
	lineStart := strings.LastIndexByte(m.doc.Text()[:off], '\n') + 1
	return row + runewidth.StringWidth(m.doc.Text()[lineStart:off])/m.viewport.Width
}

func wrappedRows(line string, width int) int {
	w := runewidth.StringWidth(line)
	if w <= width {
		return 1
	}
	return (w + width - 1) / width
}

// View renders the viewer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing token viewer..."
	}
	if m.doc == nil || m.doc.Len() == 0 {
		return m.theme.Muted.Render("No token to display")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.titleLine(),
		scrollbar.Overlay(&m.viewport, m.theme.Muted),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m Model) titleLine() string {
	title := theme.IconKey + " jwtview"
	if m.opts.Title != "" {
		title += " · " + m.opts.Title
	}
	return m.theme.Header.Render(runewidth.Truncate(title, m.width, "…"))
}

// StatusText is the plain status line: the query and its position, or the
// no-occurrence notice.
func (m Model) StatusText() string {
	if m.state.Query == "" {
		return ""
	}
	if m.state.Count() == 0 {
		return errors.NoOccurrences(m.state.Query).Message
	}
	return fmt.Sprintf("[%d/%d]", m.state.Current+1, m.state.Count())
}

func (m Model) statusLine() string {
	if m.notice != "" {
		return m.noticeStyle.Render(runewidth.Truncate(m.notice, m.width, "…"))
	}
	status := m.StatusText()
	if m.searching {
		return m.input.View() + " " + m.theme.Muted.Render(status)
	}
	if m.state.Query == "" {
		return ""
	}
	line := runewidth.Truncate(fmt.Sprintf("%s %s %s", theme.IconSearch, m.state.Query, status), m.width, "…")
	return m.theme.StatusBar.Render(line)
}
