package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View composes the header bar, the active page and the footer.
func (m Model) View() string {
	if m.booting {
		return "\n  " + m.spin.View() + " Loading SkillSport..."
	}

	header := m.header()

	var body string
	switch m.mode {
	case modeStories:
		body = m.carousel.View()
	case modeViewer:
		body = m.viewer.View()
	case modeComposer:
		body = m.composer.View()
	case modeFeed:
		body = m.feed.View()
	case modePlans:
		body = m.plans.View()
	case modeCommunities:
		body = m.communities.View()
	case modeNotifs:
		body = m.notifsPage.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footer())
}

func (m Model) header() string {
	title := m.styles.Header.Render("SkillSport")
	user := m.styles.Muted.Render(" " + m.sess.UserName)
	var badge string
	if m.unread > 0 {
		badge = " " + m.styles.Badge.Render(fmt.Sprintf("%d new", m.unread))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, user, badge)
}

func (m Model) footer() string {
	if m.errMsg != "" {
		return m.styles.ErrText.Render(m.errMsg)
	}
	if m.notice != "" {
		return m.styles.Notice.Render(m.notice)
	}
	switch m.mode {
	case modeStories:
		return m.styles.Footer.Render("tab pages · r refresh · N read notifications · q quit")
	case modeFeed, modePlans, modeCommunities, modeNotifs:
		return m.styles.Footer.Render("tab pages · N read notifications · ctrl+c quit")
	default:
		return ""
	}
}
