package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

func testStories() []api.StoryItem {
	return []api.StoryItem{
		{ID: "1", Description: "first", Uname: "alice", UserID: "u1"},
		{ID: "2", Description: "second", Uname: "bob", UserID: "u2"},
		{ID: "3", Description: "third", Uname: "alice", UserID: "u1"},
	}
}

func openViewer(t *testing.T, owner string, items []api.StoryItem, at int) ViewerModel {
	t.Helper()
	m := NewViewerModel(owner, DefaultStyles())
	m, _ = m.SetStories(items)
	m, cmd := m.Open(at)
	if m.State() != ViewerViewing {
		t.Fatalf("state after Open = %v, want ViewerViewing", m.State())
	}
	if cmd == nil {
		t.Fatalf("Open returned no command, want a tick")
	}
	return m
}

// tick delivers one tick from the current countdown generation.
func tick(m ViewerModel) (ViewerModel, tea.Cmd) {
	return m.Update(storyTickMsg{gen: m.gen})
}

func key(m ViewerModel, k string) (ViewerModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func keyEsc(m ViewerModel) (ViewerModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
}

// collect runs a command tree and returns every message it produces,
// skipping the timer commands which would otherwise block.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestViewerProgressMonotonicAndExactAdvance(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)

	prev := m.Progress()
	if prev != 0 {
		t.Fatalf("initial progress = %v, want 0", prev)
	}
	for i := 0; i < progressTicks-1; i++ {
		m, _ = tick(m)
		if m.Progress() <= prev {
			t.Fatalf("progress not monotonic at tick %d: %v <= %v", i+1, m.Progress(), prev)
		}
		prev = m.Progress()
		if m.Index() != 0 {
			t.Fatalf("advanced early at tick %d", i+1)
		}
	}
	if m.Ticks() != progressTicks-1 {
		t.Fatalf("ticks = %d, want %d", m.Ticks(), progressTicks-1)
	}

	// The final tick lands exactly on 100% and advances in the same step.
	m, _ = tick(m)
	if m.Index() != 1 {
		t.Fatalf("index after full countdown = %d, want 1", m.Index())
	}
	if m.Progress() != 0 {
		t.Fatalf("progress after advance = %v, want reset to 0", m.Progress())
	}
	if m.State() != ViewerViewing {
		t.Fatalf("state after advance = %v, want ViewerViewing", m.State())
	}
}

func TestViewerManualNavigationRestartsCountdown(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	for i := 0; i < 40; i++ {
		m, _ = tick(m)
	}
	stale := m.gen

	m, cmd := key(m, "l")
	if m.Index() != 1 {
		t.Fatalf("index after next = %d, want 1", m.Index())
	}
	if m.Progress() != 0 {
		t.Fatalf("progress after next = %v, want 0", m.Progress())
	}
	if cmd == nil {
		t.Fatalf("navigation returned no command, want a fresh tick")
	}

	// A tick from the abandoned countdown must be discarded.
	m, _ = m.Update(storyTickMsg{gen: stale})
	if m.Ticks() != 0 {
		t.Fatalf("stale tick applied: ticks = %d, want 0", m.Ticks())
	}
}

func TestViewerWrapAround(t *testing.T) {
	items := testStories()
	m := openViewer(t, "alice", items, len(items)-1)

	for i := 0; i < progressTicks; i++ {
		m, _ = tick(m)
	}
	if m.Index() != 0 {
		t.Fatalf("index after last-story countdown = %d, want wrap to 0", m.Index())
	}

	// Backwards wrap too.
	m, _ = key(m, "h")
	if m.Index() != len(items)-1 {
		t.Fatalf("index after prev from 0 = %d, want %d", m.Index(), len(items)-1)
	}
}

func TestViewerCloseDiscardsPendingTicks(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	for i := 0; i < 10; i++ {
		m, _ = tick(m)
	}
	stale := m.gen

	m, cmd := keyEsc(m)
	if m.State() != ViewerClosed {
		t.Fatalf("state after esc = %v, want ViewerClosed", m.State())
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("close produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(ViewerCloseMsg); !ok {
		t.Fatalf("close emitted %T, want ViewerCloseMsg", msgs[0])
	}

	m, cmd = m.Update(storyTickMsg{gen: stale})
	if cmd != nil {
		t.Fatalf("stale tick after close rescheduled a timer")
	}
	if m.State() != ViewerClosed || m.Ticks() != 0 {
		t.Fatalf("stale tick after close mutated state: %v/%d", m.State(), m.Ticks())
	}
}

func TestViewerEmptyListCloses(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 1)

	m, cmd := m.SetStories(nil)
	if m.State() != ViewerClosed {
		t.Fatalf("state after empty refresh = %v, want ViewerClosed", m.State())
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("empty refresh produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(ViewerCloseMsg); !ok {
		t.Fatalf("empty refresh emitted %T, want ViewerCloseMsg", msgs[0])
	}
}

func TestViewerIndexClampsAfterShrink(t *testing.T) {
	items := testStories()
	m := openViewer(t, "alice", items, 2)

	m, _ = m.SetStories(items[:2])
	if m.State() != ViewerViewing {
		t.Fatalf("state after shrink = %v, want ViewerViewing", m.State())
	}
	if m.Index() != 1 {
		t.Fatalf("index after shrink = %d, want 1", m.Index())
	}
	if m.Progress() != 0 {
		t.Fatalf("progress after shrink = %v, want fresh countdown", m.Progress())
	}
}

func TestViewerMenuOwnershipGate(t *testing.T) {
	// Story at index 1 belongs to bob; alice gets no menu.
	m := openViewer(t, "alice", testStories(), 1)
	m, _ = key(m, "m")
	if m.State() != ViewerViewing {
		t.Fatalf("non-owner opened the menu: state = %v", m.State())
	}

	// Her own story at index 0 does open it.
	m, _ = m.Open(0)
	m, _ = key(m, "m")
	if m.State() != ViewerMenuOpen {
		t.Fatalf("owner could not open the menu: state = %v", m.State())
	}
}

func TestViewerMenuDoesNotPauseCountdown(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	m, _ = key(m, "m")
	if m.State() != ViewerMenuOpen {
		t.Fatalf("state = %v, want ViewerMenuOpen", m.State())
	}

	// Ticks keep applying under the menu.
	for i := 0; i < progressTicks-1; i++ {
		m, _ = tick(m)
	}
	if m.Ticks() != progressTicks-1 {
		t.Fatalf("ticks under menu = %d, want %d", m.Ticks(), progressTicks-1)
	}

	// The countdown firing dismisses the menu and advances.
	m, _ = tick(m)
	if m.State() != ViewerViewing {
		t.Fatalf("state after countdown under menu = %v, want ViewerViewing", m.State())
	}
	if m.Index() != 1 {
		t.Fatalf("index after countdown under menu = %d, want 1", m.Index())
	}
}

func TestViewerEditCancelsCountdown(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	m, _ = key(m, "m")
	stale := m.gen

	m, _ = key(m, "u")
	if m.State() != ViewerEditing {
		t.Fatalf("state after update = %v, want ViewerEditing", m.State())
	}
	if m.editInput.Value() != "first" {
		t.Fatalf("edit field seeded with %q, want current caption", m.editInput.Value())
	}

	m, _ = m.Update(storyTickMsg{gen: stale})
	if m.Ticks() != 0 {
		t.Fatalf("tick applied while editing: ticks = %d", m.Ticks())
	}
}

func TestViewerEditCancelRestoresViewing(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	m, _ = key(m, "m")
	m, _ = key(m, "u")

	m.editInput.SetValue("scrapped draft")
	m, cmd := keyEsc(m)
	if m.State() != ViewerViewing {
		t.Fatalf("state after edit cancel = %v, want ViewerViewing", m.State())
	}
	if m.Progress() != 0 {
		t.Fatalf("progress after edit cancel = %v, want restarted countdown", m.Progress())
	}
	if cmd == nil {
		t.Fatalf("edit cancel returned no command, want a fresh tick")
	}
	if item, _ := m.Current(); m.editInput.Value() != item.Description {
		t.Fatalf("caption draft kept after cancel: %q", m.editInput.Value())
	}
}

func TestViewerSaveEmitsAndBlocksResubmit(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	m, _ = key(m, "m")
	m, _ = key(m, "u")
	m.editInput.SetValue("sharper caption")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("save produced %d messages, want 1", len(msgs))
	}
	save, ok := msgs[0].(ViewerSaveMsg)
	if !ok {
		t.Fatalf("save emitted %T, want ViewerSaveMsg", msgs[0])
	}
	if save.ID != "1" || save.Caption != "sharper caption" {
		t.Fatalf("ViewerSaveMsg = %+v", save)
	}
	if !m.Pending() {
		t.Fatalf("save did not mark the request pending")
	}

	// Enter again while pending must be a no-op.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("resubmit while pending produced a command")
	}
	_ = m
}

func TestViewerDeleteRequiresConfirmation(t *testing.T) {
	m := openViewer(t, "alice", testStories(), 0)
	m, _ = key(m, "m")

	m, cmd := key(m, "d")
	if cmd != nil {
		t.Fatalf("delete fired without confirmation")
	}
	if !m.confirmingDelete {
		t.Fatalf("delete prompt not shown")
	}

	// Declining returns to the menu.
	m, _ = key(m, "n")
	if m.confirmingDelete {
		t.Fatalf("decline left the confirmation up")
	}
	if m.State() != ViewerMenuOpen {
		t.Fatalf("state after decline = %v, want ViewerMenuOpen", m.State())
	}

	// Confirming emits the delete.
	m, _ = key(m, "d")
	m, cmd = key(m, "y")
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("confirm produced %d messages, want 1", len(msgs))
	}
	del, ok := msgs[0].(ViewerDeleteMsg)
	if !ok {
		t.Fatalf("confirm emitted %T, want ViewerDeleteMsg", msgs[0])
	}
	if del.ID != "1" {
		t.Fatalf("ViewerDeleteMsg.ID = %q, want 1", del.ID)
	}
	if !m.Pending() {
		t.Fatalf("delete did not mark the request pending")
	}
}

func TestViewerSessionWalkthrough(t *testing.T) {
	// Alice opens her first story, lets it run out, watches bob's story
	// auto-advance, steps back, edits her caption, then closes.
	m := openViewer(t, "alice", testStories(), 0)

	for i := 0; i < progressTicks; i++ {
		m, _ = tick(m)
	}
	if got, _ := m.Current(); got.Uname != "bob" {
		t.Fatalf("after autoplay viewing %q, want bob", got.Uname)
	}

	m, _ = key(m, "h")
	if got, _ := m.Current(); got.ID != "1" {
		t.Fatalf("after prev viewing %q, want story 1", got.ID)
	}

	m, _ = key(m, "m")
	m, _ = key(m, "u")
	m.editInput.SetValue("updated by alice")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)
	save, ok := msgs[0].(ViewerSaveMsg)
	if !ok || save.Caption != "updated by alice" {
		t.Fatalf("edit flow emitted %+v", msgs[0])
	}

	// The shell closes the viewer once the save lands.
	m.SetPending(false)
	m, cmd = m.Close()
	if m.State() != ViewerClosed {
		t.Fatalf("state after shell close = %v, want ViewerClosed", m.State())
	}
	if _, ok := collect(cmd)[0].(ViewerCloseMsg); !ok {
		t.Fatalf("shell close did not emit ViewerCloseMsg")
	}
}
