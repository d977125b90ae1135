package ui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages the composer emits for the app shell.
type (
	// ComposerSubmitMsg carries a validated caption + image selection.
	ComposerSubmitMsg struct {
		Caption   string
		ImagePath string
	}
	// ComposerCancelMsg dismisses the composer without submitting.
	ComposerCancelMsg struct{}
)

const (
	composerFocusCaption = iota
	composerFocusPicker
)

// ComposerModel collects a caption and one image file for a new story.
// Both must be present before submission is allowed; on a failed upload the
// shell leaves the form populated so the user can retry.
type ComposerModel struct {
	caption   textinput.Model
	picker    filepicker.Model
	imagePath string
	focus     int
	problem   string
	pending   bool
	styles    Styles
	width     int
}

// NewComposerModel creates a fresh composer.
func NewComposerModel(styles Styles) ComposerModel {
	ti := textinput.New()
	ti.Placeholder = "What's happening?"
	ti.CharLimit = 280

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png"}
	fp.Height = 8

	return ComposerModel{caption: ti, picker: fp, styles: styles}
}

// Init starts the filepicker's directory read. Reset focuses the caption.
func (m ComposerModel) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), textinput.Blink)
}

// Reset clears the form for the next story.
func (m *ComposerModel) Reset() {
	m.caption.SetValue("")
	m.imagePath = ""
	m.problem = ""
	m.pending = false
	m.focus = composerFocusCaption
	m.caption.Focus()
}

// SetPending marks the upload as in flight; resubmission is blocked until
// the shell resolves it.
func (m *ComposerModel) SetPending(pending bool) { m.pending = pending }

// SetProblem surfaces an inline validation or upload error.
func (m *ComposerModel) SetProblem(problem string) { m.problem = problem }

// Caption returns the current caption text.
func (m ComposerModel) Caption() string { return m.caption.Value() }

// ImagePath returns the selected image, if any.
func (m ComposerModel) ImagePath() string { return m.imagePath }

// SetSize updates the drawing area.
func (m *ComposerModel) SetSize(w, h int) {
	m.width = w
	m.caption.Width = w - 8
	m.picker.Height = h - 12
	if m.picker.Height < 4 {
		m.picker.Height = 4
	}
}

// Update handles form input.
func (m ComposerModel) Update(msg tea.Msg) (ComposerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, emit(ComposerCancelMsg{})
		case "tab":
			if m.focus == composerFocusCaption {
				m.focus = composerFocusPicker
				m.caption.Blur()
			} else {
				m.focus = composerFocusCaption
				m.caption.Focus()
			}
			return m, nil
		case "enter":
			if m.focus == composerFocusCaption {
				return m.submit()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == composerFocusCaption {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.caption, cmd = m.caption.Update(msg)
			return m, cmd
		}
	}
	m.picker, cmd = m.picker.Update(msg)
	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.imagePath = path
		m.problem = ""
		m.focus = composerFocusCaption
		m.caption.Focus()
	}
	return m, cmd
}

// submit validates client-side before any request is issued.
func (m ComposerModel) submit() (ComposerModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	if m.caption.Value() == "" || m.imagePath == "" {
		m.problem = "Please add an image and description."
		return m, nil
	}
	m.pending = true
	return m, emit(ComposerSubmitMsg{Caption: m.caption.Value(), ImagePath: m.imagePath})
}

// View renders the form.
func (m ComposerModel) View() string {
	title := m.styles.Title.Render("Create a Status")

	image := m.styles.Muted.Render("no image selected")
	if m.imagePath != "" {
		image = m.styles.OkText.Render("image: " + m.imagePath)
	}

	var problem string
	if m.problem != "" {
		problem = m.styles.ErrText.Render(m.problem)
	}
	var pending string
	if m.pending {
		pending = m.styles.Notice.Render("posting...")
	}

	pickerTitle := "Pick an image (tab to switch focus)"
	if m.focus == composerFocusPicker {
		pickerTitle = m.styles.Title.Render(pickerTitle)
	} else {
		pickerTitle = m.styles.Muted.Render(pickerTitle)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.caption.View(),
		image,
		pickerTitle,
		m.picker.View(),
		problem,
		pending,
		m.styles.Muted.Render("enter post · esc cancel"),
	)
	return m.styles.Card.Width(max(m.width-4, 30)).Render(body)
}
