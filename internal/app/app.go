package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screen"
	"github.com/abhisek/learnpad/internal/screens/home"
	"github.com/abhisek/learnpad/internal/store"
	"github.com/abhisek/learnpad/internal/ui/layout"
)

// Options holds what the TUI needs to run.
type Options struct {
	Library *content.Library

	// Store may be nil, in which case progress is not persisted.
	Store *store.Store

	// LogFile receives diagnostics. Empty disables logging.
	LogFile string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel rooted at the home screen.
func newAppModel(opts Options) AppModel {
	var (
		visits   store.VisitRepo
		attempts store.AttemptRepo
	)
	if opts.Store != nil {
		visits = opts.Store.VisitRepo()
		attempts = opts.Store.AttemptRepo()
	}
	return AppModel{
		router: router.New(home.New(opts.Library, visits, attempts)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	if m.router.Depth() > 1 && !hasKey(hints, "Esc") {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

func hasKey(hints []layout.KeyHint, k string) bool {
	for _, h := range hints {
		if h.Key == k {
			return true
		}
	}
	return false
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	closeLog, err := setupLogging(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// setupLogging points the standard logger at path, or discards log output
// when path is empty. The TUI owns stdout, so logs never go there.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "learnpad")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { f.Close() }, nil
}
