// Package home is the root screen listing the topics of the library.
package home

import (
	"context"
	"fmt"
	"log"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/progress"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screen"
	"github.com/abhisek/learnpad/internal/screens/topic"
	"github.com/abhisek/learnpad/internal/store"
	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/layout"
	"github.com/abhisek/learnpad/internal/ui/theme"
)

// percentagesMsg carries per-topic mastery loaded from the store.
type percentagesMsg struct {
	Percent map[string]int
}

// HomeScreen lists topics with their mastery.
type HomeScreen struct {
	library  *content.Library
	visits   store.VisitRepo
	attempts store.AttemptRepo

	percent map[string]int
	shown   []*content.Topic
	menu    components.Menu
	filter  components.FilterInput
	keys    components.KeyMap
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(library *content.Library, visits store.VisitRepo, attempts store.AttemptRepo) *HomeScreen {
	h := &HomeScreen{
		library:  library,
		visits:   visits,
		attempts: attempts,
		percent:  map[string]int{},
		filter:   components.NewFilterInput("filter topics"),
		keys:     components.DefaultKeys(),
	}
	h.keys.Select.SetHelp("Enter", "Open")
	h.keys.Back.SetHelp("Esc", "Clear filter")
	h.rebuildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadPercentages()
}

// Resume reloads mastery after returning from a topic.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadPercentages()
}

func (h *HomeScreen) Title() string {
	return "Topics"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear filter"},
		}
	}
	return components.Hints(h.keys.Up, h.keys.Down, h.keys.Select, h.keys.Filter)
}

func (h *HomeScreen) loadPercentages() tea.Cmd {
	lib, visits := h.library, h.visits
	return func() tea.Msg {
		pct, err := progress.Percentages(context.Background(), visits, lib)
		if err != nil {
			log.Printf("home: load mastery: %v", err)
			return nil
		}
		return percentagesMsg{Percent: pct}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case percentagesMsg:
		h.percent = msg.Percent
		h.rebuildMenu()
		return h, nil
	case tea.KeyPressMsg:
		return h, h.handleKey(msg)
	}

	if h.filter.Focused() {
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if h.filter.Focused() {
		switch msg.String() {
		case "esc":
			h.filter.Reset()
			h.rebuildMenu()
			return nil
		case "enter":
			h.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		h.rebuildMenu()
		return cmd
	}

	switch {
	case key.Matches(msg, h.keys.Filter):
		return h.filter.Focus()
	case key.Matches(msg, h.keys.Back):
		h.filter.Reset()
		h.rebuildMenu()
		return nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return cmd
}

func (h *HomeScreen) rebuildMenu() {
	selectedID := ""
	if h.menu.Selected < len(h.shown) {
		selectedID = h.shown[h.menu.Selected].ID
	}

	h.shown = h.shown[:0]
	var items []components.MenuItem
	for _, t := range h.library.Topics() {
		if !h.filter.Matches(t.Title) {
			continue
		}
		h.shown = append(h.shown, t)
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Detail: fmt.Sprintf("%d entries · %d%%", t.EntryCount(), h.percent[t.ID]),
			Action: h.open(t),
		})
	}

	h.menu = components.NewMenu(items)
	for i, t := range h.shown {
		if t.ID == selectedID {
			h.menu.Selected = i
		}
	}
}

func (h *HomeScreen) open(t *content.Topic) func() tea.Cmd {
	return func() tea.Cmd {
		return router.Push(topic.New(t, h.visits, h.attempts))
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Pick a topic"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Read the lesson, try the quick quiz, then beat the clock."))
	b.WriteString("\n\n")

	if h.filter.Focused() || h.filter.Model.Value() != "" {
		b.WriteString(h.filter.View())
		b.WriteString("\n\n")
	}

	if len(h.shown) == 0 {
		b.WriteString(theme.Hint.Render("No topics match."))
	} else {
		b.WriteString(h.menu.View())
	}
	return theme.Card.Width(min(width, 80)).Render(b.String())
}
