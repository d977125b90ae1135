package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
	"skillsport/internal/session"
	"skillsport/internal/story"
)

// newTestModel builds a booted shell. The client points at a dead address;
// these tests only feed messages, they never run the network commands.
func newTestModel() Model {
	sess := &session.Context{Token: "t", UserID: "u1", UserName: "alice"}
	client := api.New(api.Config{BaseURL: "http://127.0.0.1:1/api"}, sess, nil)
	store := story.NewStore(client, sess, nil)
	m := New(client, store, sess, nil)
	m.booting = false
	return m
}

func pressKey(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

func deliver(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestErrorBannerClearsOnTimer(t *testing.T) {
	m := newTestModel()

	m, cmd := deliver(m, storiesRefreshedMsg{err: errors.New("boom")})
	if m.errMsg == "" {
		t.Fatalf("errMsg empty after failed refresh, want a banner")
	}
	if cmd == nil {
		t.Fatalf("failure scheduled no banner expiry")
	}

	m, _ = deliver(m, clearNoticeMsg{})
	if m.errMsg != "" {
		t.Fatalf("errMsg = %q after expiry, want empty", m.errMsg)
	}
}

func TestErrorBannerClearsOnNextSuccess(t *testing.T) {
	m := newTestModel()

	m, _ = deliver(m, storiesRefreshedMsg{err: errors.New("boom")})
	if m.errMsg == "" {
		t.Fatalf("errMsg empty after failed refresh, want a banner")
	}

	// A later success must replace the stale banner with its own notice.
	m, _ = deliver(m, storyMutatedMsg{op: "create"})
	if m.errMsg != "" {
		t.Fatalf("errMsg = %q after successful create, want empty", m.errMsg)
	}
	if m.notice != "Status posted." {
		t.Fatalf("notice = %q, want %q", m.notice, "Status posted.")
	}
}

func TestMarkAllReadSingleFlight(t *testing.T) {
	m := newTestModel()
	m.unread = 2

	m, cmd := pressKey(m, "N")
	if cmd == nil {
		t.Fatalf("first press issued no request")
	}

	// While the request is in flight further presses are no-ops.
	m, cmd = pressKey(m, "N")
	if cmd != nil {
		t.Fatalf("second press issued a duplicate request")
	}

	m, _ = deliver(m, notifsMarkedMsg{notifs: []api.Notification{{ID: "1", Read: true}}})
	if m.unread != 0 {
		t.Fatalf("unread = %d after mark-all, want 0", m.unread)
	}

	// Once resolved a new round of unread events can be marked again.
	m.unread = 1
	_, cmd = pressKey(m, "N")
	if cmd == nil {
		t.Fatalf("press after resolution issued no request")
	}
}
