package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func carouselKey(m CarouselModel, k string) (CarouselModel, tea.Cmd) {
	if k == "enter" {
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestCarouselNavigationStopsAtEnds(t *testing.T) {
	m := NewCarouselModel("alice", DefaultStyles())
	m.SetStories(testStories())

	m, _ = carouselKey(m, "h")
	if m.Cursor() != 0 {
		t.Fatalf("cursor went below the create cell: %d", m.Cursor())
	}

	for i := 0; i < 10; i++ {
		m, _ = carouselKey(m, "l")
	}
	if m.Cursor() != len(testStories()) {
		t.Fatalf("cursor overran the list: %d", m.Cursor())
	}
}

func TestCarouselEnterOnCreateCellOpensComposer(t *testing.T) {
	m := NewCarouselModel("alice", DefaultStyles())
	m.SetStories(testStories())

	_, cmd := carouselKey(m, "enter")
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("enter produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(CarouselOpenComposerMsg); !ok {
		t.Fatalf("enter on create cell emitted %T, want CarouselOpenComposerMsg", msgs[0])
	}
}

func TestCarouselEnterOnStoryOpensViewer(t *testing.T) {
	m := NewCarouselModel("alice", DefaultStyles())
	m.SetStories(testStories())

	m, _ = carouselKey(m, "l")
	m, _ = carouselKey(m, "l")
	_, cmd := carouselKey(m, "enter")
	msgs := collect(cmd)
	open, ok := msgs[0].(CarouselOpenViewerMsg)
	if !ok {
		t.Fatalf("enter on story emitted %T, want CarouselOpenViewerMsg", msgs[0])
	}
	if open.Index != 1 {
		t.Fatalf("CarouselOpenViewerMsg.Index = %d, want 1", open.Index)
	}
}

func TestCarouselCursorClampsOnShrink(t *testing.T) {
	m := NewCarouselModel("alice", DefaultStyles())
	m.SetStories(testStories())
	for i := 0; i < 3; i++ {
		m, _ = carouselKey(m, "l")
	}

	m.SetStories(testStories()[:1])
	if m.Cursor() != 1 {
		t.Fatalf("cursor after shrink = %d, want 1", m.Cursor())
	}
}

func TestCarouselMarksOwnStories(t *testing.T) {
	m := NewCarouselModel("alice", DefaultStyles())
	m.SetStories(testStories())
	m.SetSize(120)

	view := m.View()
	if !strings.Contains(view, "●") {
		t.Fatalf("own-story marker missing from view")
	}
	if !strings.Contains(view, "Add") {
		t.Fatalf("create cell missing from view")
	}
}
