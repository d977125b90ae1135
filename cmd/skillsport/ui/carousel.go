package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skillsport/internal/api"
)

// Messages the carousel emits for the app shell.
type (
	// CarouselOpenViewerMsg asks the shell to open the viewer at an index.
	CarouselOpenViewerMsg struct {
		Index int
	}
	// CarouselOpenComposerMsg asks the shell to open the composer.
	CarouselOpenComposerMsg struct{}
)

// CarouselModel renders the story list as a horizontal strip of thumbnail
// cards with a leading "create" cell. Selecting a thumbnail opens the
// viewer; selecting the create cell opens the composer. Those are the only
// two actions it originates.
type CarouselModel struct {
	stories []api.StoryItem
	cursor  int // 0 is the create cell; story i is cursor i+1
	owner   string
	styles  Styles
	width   int
}

// NewCarouselModel creates an empty carousel for the given session user.
func NewCarouselModel(owner string, styles Styles) CarouselModel {
	return CarouselModel{owner: owner, styles: styles}
}

// SetStories replaces the rendered list, clamping the cursor.
func (m *CarouselModel) SetStories(items []api.StoryItem) {
	m.stories = items
	if m.cursor > len(items) {
		m.cursor = len(items)
	}
}

// SetSize updates the drawing width.
func (m *CarouselModel) SetSize(w int) { m.width = w }

// Cursor returns the current selection (0 = create cell).
func (m CarouselModel) Cursor() int { return m.cursor }

// Update handles navigation and selection.
func (m CarouselModel) Update(msg tea.Msg) (CarouselModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.stories) {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "n":
		return m, emit(CarouselOpenComposerMsg{})
	case "enter":
		if m.cursor == 0 {
			return m, emit(CarouselOpenComposerMsg{})
		}
		return m, emit(CarouselOpenViewerMsg{Index: m.cursor - 1})
	}
	return m, nil
}

// View renders the strip. Cards show the owner name and a caption snippet;
// the session user's own cards carry a dot marker, mirroring the web
// client's owner affordance.
func (m CarouselModel) View() string {
	cells := make([]string, 0, len(m.stories)+1)

	create := "+\nAdd\nStatus"
	if m.cursor == 0 {
		cells = append(cells, m.styles.CardHot.Render(create))
	} else {
		cells = append(cells, m.styles.Card.Render(create))
	}

	for i, story := range m.stories {
		marker := " "
		if story.OwnedBy(m.owner) {
			marker = "●"
		}
		body := m.styles.Owner.Render(Truncate(story.Uname, 10)) + " " + marker +
			"\n" + m.styles.Caption.Render(Truncate(story.Description, 12)) +
			"\n" + m.styles.Muted.Render(Truncate(story.ID, 12))
		if m.cursor == i+1 {
			cells = append(cells, m.styles.CardHot.Render(body))
		} else {
			cells = append(cells, m.styles.Card.Render(body))
		}
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	title := m.styles.Title.Render("Statuses")
	help := m.styles.Muted.Render("←/→ select · enter open · n new status")
	return lipgloss.JoinVertical(lipgloss.Left, title, strip, help)
}
