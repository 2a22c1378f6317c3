package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	left    bool
	resumed int
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Leave()               { s.left = true }
func (s *stubScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

// plainScreen implements neither Leaver nor Resumer.
type plainScreen struct{ title string }

func (p *plainScreen) Init() tea.Cmd                            { return nil }
func (p *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *plainScreen) View(int, int) string                    { return p.title }
func (p *plainScreen) Title() string                           { return p.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "first"})

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopLeavesAndResumes(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if !s2.left {
		t.Error("expected popped screen to be told it left")
	}
	if s1.resumed != 1 {
		t.Errorf("expected uncovered screen to resume once, got %d", s1.resumed)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if s1.left {
		t.Error("root screen must not leave")
	}
}

func TestPopWithoutHooks(t *testing.T) {
	r := New(&plainScreen{title: "root"})
	r.Push(&plainScreen{title: "top"})

	if cmd := r.Pop(); cmd != nil {
		t.Error("expected no command without Resumer")
	}
	if r.Active().Title() != "root" {
		t.Errorf("expected root active, got %q", r.Active().Title())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
	if !s1.left {
		t.Error("expected replaced screen to leave")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Push(&stubScreen{title: "second"})

	r.Replace(&stubScreen{title: "third"})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
	if s1.resumed != 0 {
		t.Error("replace must not resume the screen below")
	}
}

func TestNavigationMessages(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(Push(s2)())
	if r.Active() != s2 {
		t.Fatal("expected Push command to push")
	}

	s3 := &stubScreen{title: "third"}
	r.Update(Replace(s3)())
	if r.Active() != s3 || !s2.left {
		t.Fatal("expected Replace command to replace")
	}

	r.Update(Pop()())
	if r.Active() != s1 || !s3.left {
		t.Fatal("expected Pop command to pop")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update("hello")

	if len(s2.got) != 1 || len(s1.got) != 0 {
		t.Fatalf("expected only the active screen to receive the message")
	}
}
