package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

// Messages the communities page emits for the app shell.
type (
	// CommunityLoadMsg asks the shell to fetch a community and its board.
	CommunityLoadMsg struct {
		ID string
	}
	// CommunityJoinMsg asks the shell to join a community.
	CommunityJoinMsg struct {
		ID string
	}
	// CommunityLeaveMsg asks the shell to leave a community.
	CommunityLeaveMsg struct {
		ID string
	}
	// CommunityLikePostMsg asks the shell to like a board post.
	CommunityLikePostMsg struct {
		CommunityID string
		PostID      string
	}
)

type communityListItem struct {
	community api.Community
}

func (it communityListItem) Title() string { return it.community.Name }
func (it communityListItem) Description() string {
	return fmt.Sprintf("%s · %d members", Truncate(it.community.Description, 40), len(it.community.Members))
}
func (it communityListItem) FilterValue() string {
	return it.community.Name + " " + it.community.Description
}

// CommunitiesModel shows the community catalogue and, once one is opened,
// its member roster and post board.
type CommunitiesModel struct {
	list list.Model

	detail  api.Community
	posts   []api.CommunityPost
	cursor  int
	showing bool
	pending bool // a join/leave/like request is in flight

	viewport viewport.Model
	owner    string
	styles   Styles
	width    int
	height   int
}

// NewCommunitiesModel creates an empty communities page for the session user.
func NewCommunitiesModel(owner string, styles Styles) CommunitiesModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Communities"
	l.SetShowStatusBar(false)
	return CommunitiesModel{list: l, owner: owner, styles: styles}
}

// SetCommunities replaces the catalogue.
func (m *CommunitiesModel) SetCommunities(communities []api.Community) {
	items := make([]list.Item, len(communities))
	for i, c := range communities {
		items[i] = communityListItem{community: c}
	}
	m.list.SetItems(items)
}

// ShowDetail installs a loaded community and its board.
func (m *CommunitiesModel) ShowDetail(community api.Community, posts []api.CommunityPost) {
	m.detail = community
	m.posts = posts
	if m.cursor >= len(posts) {
		m.cursor = 0
	}
	if !m.showing {
		m.viewport = viewport.New(m.width, max(m.height-3, 4))
		m.showing = true
	}
	m.refresh()
}

// SetDetail refreshes the open community after a join/leave, keeping the
// board as is.
func (m *CommunitiesModel) SetDetail(community api.Community) {
	if m.showing && m.detail.ID == community.ID {
		m.detail = community
		m.refresh()
	}
}

// SetPosts refreshes the open community's board, e.g. after a like.
func (m *CommunitiesModel) SetPosts(communityID string, posts []api.CommunityPost) {
	if m.showing && m.detail.ID == communityID {
		m.posts = posts
		if m.cursor >= len(posts) {
			m.cursor = 0
		}
		m.refresh()
	}
}

// SetPending blocks further join/leave/like requests until resolved.
func (m *CommunitiesModel) SetPending(pending bool) { m.pending = pending }

// SetSize updates the drawing area.
func (m *CommunitiesModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
	if m.showing {
		m.viewport.Width = w
		m.viewport.Height = max(h-3, 4)
		m.refresh()
	}
}

// Update handles catalogue navigation and board actions.
func (m CommunitiesModel) Update(msg tea.Msg) (CommunitiesModel, tea.Cmd) {
	if m.showing {
		return m.updateDetail(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if it, ok := m.list.SelectedItem().(communityListItem); ok {
			return m, emit(CommunityLoadMsg{ID: it.community.ID})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m CommunitiesModel) updateDetail(msg tea.Msg) (CommunitiesModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc", "q":
		m.showing = false
		return m, nil
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
	case "J":
		if !m.pending && !m.detail.HasMember(m.owner) {
			m.pending = true
			return m, emit(CommunityJoinMsg{ID: m.detail.ID})
		}
	case "L":
		if !m.pending && m.detail.HasMember(m.owner) {
			m.pending = true
			return m, emit(CommunityLeaveMsg{ID: m.detail.ID})
		}
	case "l":
		// One like per user; the backend rejects repeats, so don't offer it.
		if post, ok := m.currentPost(); ok && !m.pending && !post.LikedByUser(m.owner) {
			m.pending = true
			return m, emit(CommunityLikePostMsg{CommunityID: m.detail.ID, PostID: post.ID})
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CommunitiesModel) currentPost() (api.CommunityPost, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return api.CommunityPost{}, false
	}
	return m.posts[m.cursor], true
}

func (m *CommunitiesModel) refresh() {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.detail.Name) + "\n")
	sb.WriteString(m.styles.Caption.Render(m.detail.Description) + "\n")

	membership := fmt.Sprintf("%d members", len(m.detail.Members))
	if m.detail.HasMember(m.owner) {
		membership += " · joined"
	}
	sb.WriteString(m.styles.Muted.Render(membership) + "\n\n")

	if len(m.posts) == 0 {
		sb.WriteString(m.styles.Muted.Render("No posts yet."))
	}
	for i, post := range m.posts {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		heart := "♡"
		if post.LikedByUser(m.owner) {
			heart = "♥"
		}
		sb.WriteString(marker + m.styles.Owner.Render(post.Author) + " " +
			m.styles.Muted.Render(fmt.Sprintf("%s %d", heart, post.Likes)) + "\n")
		sb.WriteString("  " + m.styles.Caption.Render(Truncate(post.Content, 120)) + "\n\n")
	}
	m.viewport.SetContent(sb.String())
}

// View renders the catalogue or the open community.
func (m CommunitiesModel) View() string {
	if !m.showing {
		return m.list.View()
	}
	action := "J join"
	if m.detail.HasMember(m.owner) {
		action = "L leave"
	}
	footer := m.styles.Muted.Render("j/k move · l like · " + action + " · esc back")
	return m.viewport.View() + "\n" + footer
}
