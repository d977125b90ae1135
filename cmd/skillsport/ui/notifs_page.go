package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

type (
	// NotifMarkReadMsg asks the shell to mark one notification read.
	NotifMarkReadMsg struct {
		ID string
	}
	// NotifMarkAllReadMsg asks the shell to mark everything read.
	NotifMarkAllReadMsg struct{}
)

// NotifsModel lists the user's notifications, unread first in whatever
// order the backend returns them.
type NotifsModel struct {
	notifs  []api.Notification
	cursor  int
	pending bool // a mark-read request is in flight

	viewport viewport.Model
	styles   Styles
	width    int
	height   int
	ready    bool
}

// NewNotifsModel creates an empty notifications page.
func NewNotifsModel(styles Styles) NotifsModel {
	return NotifsModel{styles: styles}
}

// SetNotifs replaces the list and clears the in-flight guard.
func (m *NotifsModel) SetNotifs(notifs []api.Notification) {
	m.notifs = notifs
	m.pending = false
	if m.cursor >= len(notifs) {
		m.cursor = 0
	}
	m.refresh()
}

// SetPending blocks further mark-read requests until resolved.
func (m *NotifsModel) SetPending(pending bool) { m.pending = pending }

// SetSize updates the drawing area.
func (m *NotifsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if !m.ready {
		m.viewport = viewport.New(w, max(h-2, 4))
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = max(h-2, 4)
	}
	m.refresh()
}

// Update handles cursor motion and mark-read actions.
func (m NotifsModel) Update(msg tea.Msg) (NotifsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}
	case "down", "j":
		if m.cursor < len(m.notifs)-1 {
			m.cursor++
			m.refresh()
		}
	case "enter":
		if n, ok := m.current(); ok && !n.Read && !m.pending {
			m.pending = true
			return m, emit(NotifMarkReadMsg{ID: n.ID})
		}
	case "a":
		if m.unread() > 0 && !m.pending {
			m.pending = true
			return m, emit(NotifMarkAllReadMsg{})
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m NotifsModel) current() (api.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notifs) {
		return api.Notification{}, false
	}
	return m.notifs[m.cursor], true
}

func (m NotifsModel) unread() int {
	n := 0
	for _, notif := range m.notifs {
		if !notif.Read {
			n++
		}
	}
	return n
}

func notifLine(n api.Notification) string {
	if n.Content != "" {
		return n.Content
	}
	switch n.Type {
	case "LIKE":
		return "Someone liked your post."
	case "COMMENT":
		return "Someone commented on your post."
	default:
		return n.Type
	}
}

func (m *NotifsModel) refresh() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Notifications") + "\n\n")
	if len(m.notifs) == 0 {
		sb.WriteString(m.styles.Muted.Render("Nothing here yet."))
	}
	for i, n := range m.notifs {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		dot := "  "
		if !n.Read {
			dot = m.styles.Badge.Render("●") + " "
		}
		line := Truncate(notifLine(n), m.width-8)
		if n.Read {
			line = m.styles.Muted.Render(line)
		} else {
			line = m.styles.Caption.Render(line)
		}
		sb.WriteString(marker + dot + line + "\n")
	}
	m.viewport.SetContent(sb.String())
}

// View renders the list with a key hint footer.
func (m NotifsModel) View() string {
	if !m.ready {
		return ""
	}
	footer := m.styles.Muted.Render(fmt.Sprintf("%d unread · j/k move · enter mark read · a mark all read", m.unread()))
	return m.viewport.View() + "\n" + footer
}
