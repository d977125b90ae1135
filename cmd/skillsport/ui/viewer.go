package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skillsport/internal/api"
)

// The countdown is 10s split into 100 progress ticks of 100ms, so the bar
// reaches exactly 100% at the advance instant.
const (
	storyDuration = 10 * time.Second
	progressTicks = 100
	tickInterval  = storyDuration / progressTicks
)

// ViewerState is the autoplay viewer's current mode.
type ViewerState int

const (
	// ViewerClosed: no story displayed. Initial and terminal.
	ViewerClosed ViewerState = iota
	// ViewerViewing: one story displayed, countdown running.
	ViewerViewing
	// ViewerMenuOpen: owner action menu over a running countdown.
	ViewerMenuOpen
	// ViewerEditing: caption editable, countdown cancelled.
	ViewerEditing
)

// storyTickMsg is one progress tick. The generation tag identifies the
// countdown that scheduled it; ticks from an abandoned countdown are
// discarded, which is how every exit path tears the timers down.
type storyTickMsg struct {
	gen int
}

// Messages the viewer emits for the app shell to act on.
type (
	// ViewerCloseMsg reports that the viewer left the Viewing states.
	ViewerCloseMsg struct{}
	// ViewerSaveMsg asks the shell to persist an edited caption.
	ViewerSaveMsg struct {
		ID      string
		Caption string
	}
	// ViewerDeleteMsg asks the shell to delete a story (already confirmed).
	ViewerDeleteMsg struct {
		ID string
	}
)

// ViewerModel presents one story at a time from the store's ordered list,
// auto-advancing with a progress bar, with manual navigation and owner-only
// edit/delete.
type ViewerModel struct {
	state   ViewerState
	stories []api.StoryItem
	index   int

	gen   int // countdown generation; bumping it cancels in-flight ticks
	ticks int // 0..progressTicks within the current Viewing entry

	confirmingDelete bool
	pending          bool // a save/delete request is in flight

	owner     string // session user's display name, for ownership gating
	bar       progress.Model
	editInput textinput.Model
	styles    Styles
	width     int
	height    int
}

// NewViewerModel creates a closed viewer for the given session user.
func NewViewerModel(owner string, styles Styles) ViewerModel {
	ti := textinput.New()
	ti.Placeholder = "Edit caption..."
	ti.CharLimit = 280
	return ViewerModel{
		owner:     owner,
		bar:       progress.New(progress.WithDefaultGradient()),
		editInput: ti,
		styles:    styles,
	}
}

// State returns the current viewer state.
func (m ViewerModel) State() ViewerState { return m.state }

// Index returns the index of the displayed story.
func (m ViewerModel) Index() int { return m.index }

// Ticks returns elapsed progress ticks (0..100) in the current countdown.
func (m ViewerModel) Ticks() int { return m.ticks }

// Progress returns countdown completion in percent, 0..100.
func (m ViewerModel) Progress() float64 { return float64(m.ticks) }

// Pending reports whether a save/delete request is outstanding.
func (m ViewerModel) Pending() bool { return m.pending }

// Current returns the displayed story, if any.
func (m ViewerModel) Current() (api.StoryItem, bool) {
	if m.state == ViewerClosed || m.index >= len(m.stories) {
		return api.StoryItem{}, false
	}
	return m.stories[m.index], true
}

// SetSize updates the drawing area.
func (m *ViewerModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.bar.Width = w - 8
	if m.bar.Width < 10 {
		m.bar.Width = 10
	}
}

// SetPending marks a mutation as in flight; input that would fire another
// request is ignored until the shell resolves it.
func (m *ViewerModel) SetPending(pending bool) { m.pending = pending }

// SetStories replaces the viewer's snapshot of the list. If the list became
// empty while viewing, the viewer closes; if the displayed index fell off
// the end, viewing re-enters at the last valid item with a fresh countdown.
func (m ViewerModel) SetStories(items []api.StoryItem) (ViewerModel, tea.Cmd) {
	m.stories = items
	if m.state == ViewerClosed {
		return m, nil
	}
	if len(items) == 0 {
		m = m.close()
		return m, emit(ViewerCloseMsg{})
	}
	if m.index >= len(items) {
		return m.enter(len(items) - 1)
	}
	return m, nil
}

// Open enters Viewing at index i.
func (m ViewerModel) Open(i int) (ViewerModel, tea.Cmd) {
	if i < 0 || i >= len(m.stories) {
		return m, nil
	}
	return m.enter(i)
}

// enter (re)enters Viewing at index i: progress reset, fresh countdown.
func (m ViewerModel) enter(i int) (ViewerModel, tea.Cmd) {
	m.state = ViewerViewing
	m.index = i
	m.ticks = 0
	m.confirmingDelete = false
	m.gen++
	m.editInput.SetValue(m.stories[i].Description)
	m.editInput.Blur()
	return m, tickCmd(m.gen)
}

// close cancels the countdown and returns to Closed.
func (m ViewerModel) close() ViewerModel {
	m.state = ViewerClosed
	m.ticks = 0
	m.gen++
	m.confirmingDelete = false
	m.editInput.Blur()
	return m
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return storyTickMsg{gen: gen}
	})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update handles ticks and key input.
func (m ViewerModel) Update(msg tea.Msg) (ViewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case storyTickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ViewerModel) handleTick(msg storyTickMsg) (ViewerModel, tea.Cmd) {
	// The countdown runs in Viewing and keeps running under the menu;
	// everywhere else the tick is stale by definition.
	if msg.gen != m.gen || (m.state != ViewerViewing && m.state != ViewerMenuOpen) {
		return m, nil
	}
	m.ticks++
	if m.ticks < progressTicks {
		return m, tickCmd(m.gen)
	}
	// Full duration elapsed: advance, dismissing the menu if it was open.
	// The wrap is modulo the list length now, not at entry.
	if len(m.stories) == 0 {
		m = m.close()
		return m, emit(ViewerCloseMsg{})
	}
	return m.enter((m.index + 1) % len(m.stories))
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	switch m.state {
	case ViewerViewing:
		return m.handleViewingKey(msg)
	case ViewerMenuOpen:
		return m.handleMenuKey(msg)
	case ViewerEditing:
		return m.handleEditingKey(msg)
	}
	return m, nil
}

func (m ViewerModel) handleViewingKey(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m = m.close()
		return m, emit(ViewerCloseMsg{})
	case "right", "l", "n":
		return m.advance(1)
	case "left", "h", "p":
		return m.advance(-1)
	case "m", "enter":
		if item, ok := m.Current(); ok && item.OwnedBy(m.owner) {
			// Menu opens over a still-running countdown.
			m.state = ViewerMenuOpen
			m.confirmingDelete = false
		}
		return m, nil
	}
	return m, nil
}

// advance moves by delta with wrap-around, cancelling the running countdown
// and starting a fresh one at the new index.
func (m ViewerModel) advance(delta int) (ViewerModel, tea.Cmd) {
	n := len(m.stories)
	if n == 0 {
		m = m.close()
		return m, emit(ViewerCloseMsg{})
	}
	return m.enter(((m.index+delta)%n + n) % n)
}

func (m ViewerModel) handleMenuKey(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	if m.confirmingDelete {
		switch msg.String() {
		case "y":
			if item, ok := m.Current(); ok {
				m.pending = true
				return m, emit(ViewerDeleteMsg{ID: item.ID})
			}
		case "n", "esc":
			m.confirmingDelete = false
		}
		return m, nil
	}
	switch msg.String() {
	case "u":
		// Entering edit cancels the countdown.
		m.state = ViewerEditing
		m.gen++
		if item, ok := m.Current(); ok {
			m.editInput.SetValue(item.Description)
		}
		m.editInput.Focus()
		m.editInput.CursorEnd()
		return m, textinput.Blink
	case "d":
		m.confirmingDelete = true
		return m, nil
	case "m", "esc":
		// Dismiss the menu; the countdown never stopped.
		m.state = ViewerViewing
		return m, nil
	}
	return m, nil
}

func (m ViewerModel) handleEditingKey(msg tea.KeyMsg) (ViewerModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.pending {
			return m, nil
		}
		if item, ok := m.Current(); ok {
			m.pending = true
			return m, emit(ViewerSaveMsg{ID: item.ID, Caption: m.editInput.Value()})
		}
		return m, nil
	case "esc":
		// Cancel: discard the edit, restore the caption, restart the
		// countdown from zero.
		return m.enter(m.index)
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// Close dismisses the viewer from outside (e.g. after a successful save or
// delete, where the refreshed list re-sorts and the old index is void).
func (m ViewerModel) Close() (ViewerModel, tea.Cmd) {
	if m.state == ViewerClosed {
		return m, nil
	}
	m = m.close()
	return m, emit(ViewerCloseMsg{})
}

// View renders the full-screen story card.
func (m ViewerModel) View() string {
	item, ok := m.Current()
	if !ok {
		return ""
	}

	bar := m.bar.ViewAs(m.Progress() / 100)
	owner := m.styles.Owner.Render(item.Uname)

	var caption string
	switch m.state {
	case ViewerEditing:
		caption = m.editInput.View() + "\n" + m.styles.Muted.Render("enter save · esc cancel")
	default:
		caption = m.styles.Caption.Render(item.Description)
	}

	var menu string
	if m.state == ViewerMenuOpen {
		if m.confirmingDelete {
			menu = m.styles.ErrText.Render("Delete this status? y / n")
		} else {
			menu = lipgloss.JoinHorizontal(lipgloss.Top,
				m.styles.MenuHot.Render("[u] Update Status"),
				" ",
				m.styles.MenuItem.Render("[d] Delete Status"),
			)
		}
	}

	var hints string
	if item, ok := m.Current(); ok && item.OwnedBy(m.owner) && m.state == ViewerViewing {
		hints = m.styles.Muted.Render("←/→ navigate · m menu · esc close")
	} else if m.state == ViewerViewing {
		hints = m.styles.Muted.Render("←/→ navigate · esc close")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		bar,
		owner,
		m.styles.Muted.Render(Truncate("img: "+item.ID+".jpg", 40)),
		"",
		caption,
		menu,
		hints,
	)
	return m.styles.CardHot.Width(max(m.width-4, 24)).Render(body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
