package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

// Messages the feed emits for the app shell.
type (
	// FeedToggleLikeMsg asks the shell to flip the like on a post.
	FeedToggleLikeMsg struct {
		PostID string
	}
	// FeedLoadCommentsMsg asks the shell to fetch a post's comments.
	FeedLoadCommentsMsg struct {
		PostID string
	}
	// FeedAddCommentMsg asks the shell to post a comment.
	FeedAddCommentMsg struct {
		PostID string
		Text   string
	}
)

// FeedModel lists posts with like counts and expandable comments.
type FeedModel struct {
	posts    []api.Post
	cursor   int
	open     string // post id with comments expanded, "" for none
	comments []api.Comment

	commentInput textinput.Model
	commenting   bool
	pending      bool // a like/comment request is in flight

	viewport viewport.Model
	styles   Styles
	ready    bool
}

// NewFeedModel creates an empty feed page.
func NewFeedModel(styles Styles) FeedModel {
	ti := textinput.New()
	ti.Placeholder = "Write a comment..."
	ti.CharLimit = 500
	return FeedModel{commentInput: ti, styles: styles}
}

// SetPosts replaces the feed contents.
func (m *FeedModel) SetPosts(posts []api.Post) {
	m.posts = posts
	if m.cursor >= len(posts) {
		m.cursor = 0
	}
	m.refresh()
}

// SetComments installs the fetched comments for the expanded post.
func (m *FeedModel) SetComments(postID string, comments []api.Comment) {
	if m.open == postID {
		m.comments = comments
		m.refresh()
	}
}

// SetPending blocks further like/comment requests until resolved.
func (m *FeedModel) SetPending(pending bool) { m.pending = pending }

// StopCommenting leaves comment-entry mode, e.g. after a successful post.
func (m *FeedModel) StopCommenting() {
	m.commenting = false
	m.commentInput.SetValue("")
	m.commentInput.Blur()
}

// SetSize updates the drawing area.
func (m *FeedModel) SetSize(w, h int) {
	if !m.ready {
		m.viewport = viewport.New(w, h-2)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h - 2
	}
	m.commentInput.Width = w - 8
	m.refresh()
}

// Update handles navigation, like toggling and comment entry.
func (m FeedModel) Update(msg tea.Msg) (FeedModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.commenting {
		switch key.String() {
		case "enter":
			text := strings.TrimSpace(m.commentInput.Value())
			if text == "" || m.pending {
				return m, nil
			}
			m.pending = true
			return m, emit(FeedAddCommentMsg{PostID: m.open, Text: text})
		case "esc":
			m.StopCommenting()
			return m, nil
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
			m.refresh()
		}
	case "l":
		if post, ok := m.current(); ok && !m.pending {
			m.pending = true
			return m, emit(FeedToggleLikeMsg{PostID: post.ID})
		}
	case "c":
		if post, ok := m.current(); ok {
			if m.open == post.ID {
				m.open = ""
				m.comments = nil
				m.refresh()
				return m, nil
			}
			m.open = post.ID
			m.comments = nil
			m.refresh()
			return m, emit(FeedLoadCommentsMsg{PostID: post.ID})
		}
	case "C":
		if post, ok := m.current(); ok {
			m.open = post.ID
			m.commenting = true
			m.commentInput.Focus()
			return m, textinput.Blink
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FeedModel) current() (api.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return api.Post{}, false
	}
	return m.posts[m.cursor], true
}

func (m *FeedModel) refresh() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	if len(m.posts) == 0 {
		sb.WriteString(m.styles.Muted.Render("No posts yet."))
	}
	for i, post := range m.posts {
		title := post.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s — %s", title, post.UserEmail)
		if i == m.cursor {
			sb.WriteString(m.styles.Title.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")

		heart := "♡"
		if post.LikedByUser {
			heart = "♥"
		}
		sb.WriteString("  " + m.styles.Muted.Render(fmt.Sprintf("%s %d", heart, post.LikeCount)))
		sb.WriteString("\n")
		sb.WriteString("  " + m.styles.Caption.Render(Truncate(post.Content, 120)))
		sb.WriteString("\n")

		if m.open == post.ID {
			if len(m.comments) == 0 {
				sb.WriteString("    " + m.styles.Muted.Render("(no comments)") + "\n")
			}
			for _, comment := range m.comments {
				sb.WriteString("    " + m.styles.Owner.Render(comment.Username) + " " +
					m.styles.Caption.Render(comment.Comment) + "\n")
			}
		}
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
}

// View renders the feed.
func (m FeedModel) View() string {
	if !m.ready {
		return ""
	}
	footer := m.styles.Muted.Render("j/k move · l like · c comments · C comment")
	if m.commenting {
		footer = m.commentInput.View()
	}
	return m.viewport.View() + "\n" + footer
}
