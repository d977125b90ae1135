package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"skillsport/cmd/skillsport/ui"
	"skillsport/internal/story"
)

const noticeTTL = 4 * time.Second

// Update routes every message: global keys first, then results of
// background commands, then page-emitted requests, then whatever the
// active page wants to handle itself.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.booting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		m.notice = ""
		m.errMsg = ""
		return m, nil

	case bootLoadedMsg:
		return m.handleBoot(msg)

	case storiesRefreshedMsg:
		if msg.err != nil {
			return m.fail("Couldn't refresh statuses.", msg.err)
		}
		m.errMsg = ""
		m.carousel.SetStories(msg.items)
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.SetStories(msg.items)
		return m, cmd

	case storyMutatedMsg:
		return m.handleStoryMutated(msg)

	case postsRefreshedMsg:
		m.feed.SetPending(false)
		if msg.err != nil {
			return m.fail("Couldn't update the feed.", msg.err)
		}
		m.errMsg = ""
		m.feed.SetPosts(msg.posts)
		return m, nil

	case commentsLoadedMsg:
		if msg.err != nil {
			return m.fail("Couldn't load comments.", msg.err)
		}
		m.errMsg = ""
		m.feed.SetComments(msg.postID, msg.comments)
		return m, nil

	case commentAddedMsg:
		m.feed.SetPending(false)
		if msg.err != nil {
			return m.fail("Couldn't post the comment.", msg.err)
		}
		m.errMsg = ""
		m.feed.StopCommenting()
		m.feed.SetComments(msg.postID, msg.comments)
		m.notice = "Comment posted."
		return m, clearNoticeAfter(noticeTTL)

	case planLoadedMsg:
		if msg.err != nil {
			return m.fail("Couldn't load that plan.", msg.err)
		}
		m.errMsg = ""
		m.plans.ShowDetail(msg.plan)
		return m, nil

	case notifsMarkedMsg:
		m.markingRead = false
		if msg.err != nil {
			m.notifsPage.SetPending(false)
			return m.fail("Couldn't mark notifications read.", msg.err)
		}
		m.errMsg = ""
		m.notifs = msg.notifs
		m.unread = unreadCount(msg.notifs)
		m.notifsPage.SetNotifs(msg.notifs)
		return m, nil

	case communityLoadedMsg:
		if msg.err != nil {
			return m.fail("Couldn't open that community.", msg.err)
		}
		m.errMsg = ""
		m.communities.ShowDetail(msg.community, msg.posts)
		return m, nil

	case communityChangedMsg:
		m.communities.SetPending(false)
		if msg.err != nil {
			return m.fail("Couldn't update your membership.", msg.err)
		}
		m.errMsg = ""
		m.communities.SetDetail(msg.community)
		if msg.op == "join" {
			m.notice = "Joined " + msg.community.Name + "."
		} else {
			m.notice = "Left " + msg.community.Name + "."
		}
		return m, clearNoticeAfter(noticeTTL)

	case communityPostsMsg:
		m.communities.SetPending(false)
		if msg.err != nil {
			return m.fail("Couldn't like that post.", msg.err)
		}
		m.errMsg = ""
		m.communities.SetPosts(msg.communityID, msg.posts)
		return m, nil

	// Requests the pages emit for the shell.
	case ui.CarouselOpenComposerMsg:
		m.mode = modeComposer
		m.composer.Reset()
		return m, m.composer.Init()

	case ui.CarouselOpenViewerMsg:
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.SetStories(m.store.Items())
		if cmd != nil {
			return m, cmd
		}
		m.viewer, cmd = m.viewer.Open(msg.Index)
		if m.viewer.State() != ui.ViewerClosed {
			m.mode = modeViewer
		}
		return m, cmd

	case ui.ViewerCloseMsg:
		if m.mode == modeViewer {
			m.mode = modeStories
		}
		return m, nil

	case ui.ViewerSaveMsg:
		return m, m.saveStoryCmd(msg.ID, msg.Caption)

	case ui.ViewerDeleteMsg:
		return m, m.deleteStoryCmd(msg.ID)

	case ui.ComposerSubmitMsg:
		return m, m.createStoryCmd(msg.Caption, msg.ImagePath)

	case ui.ComposerCancelMsg:
		m.mode = modeStories
		return m, nil

	case ui.FeedToggleLikeMsg:
		return m, m.toggleLikeCmd(msg.PostID)

	case ui.FeedLoadCommentsMsg:
		return m, m.loadCommentsCmd(msg.PostID)

	case ui.FeedAddCommentMsg:
		return m, m.addCommentCmd(msg.PostID, msg.Text)

	case ui.PlansLoadDetailMsg:
		return m, m.loadPlanCmd(msg.PlanID)

	case ui.CommunityLoadMsg:
		return m, m.loadCommunityCmd(msg.ID)

	case ui.CommunityJoinMsg:
		return m, m.joinCommunityCmd(msg.ID)

	case ui.CommunityLeaveMsg:
		return m, m.leaveCommunityCmd(msg.ID)

	case ui.CommunityLikePostMsg:
		return m, m.likeCommunityPostCmd(msg.CommunityID, msg.PostID)

	case ui.NotifMarkReadMsg:
		return m, m.markOneReadCmd(msg.ID)

	case ui.NotifMarkAllReadMsg:
		// The page has its own guard, but "N" shares the same request.
		if m.markingRead {
			return m, nil
		}
		m.markingRead = true
		return m, m.markAllReadCmd()
	}

	// Everything else (viewer ticks, filepicker reads, viewport motion) goes
	// to the page that scheduled it. Viewer ticks are generation-guarded, so
	// forwarding them unconditionally is safe.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	cmds = append(cmds, cmd)
	if m.mode == modeComposer {
		m.composer, cmd = m.composer.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	body := msg.Height - 4
	m.carousel.SetSize(msg.Width)
	m.viewer.SetSize(msg.Width, body)
	m.composer.SetSize(msg.Width, body)
	m.feed.SetSize(msg.Width, body)
	m.plans.SetSize(msg.Width, body)
	m.communities.SetSize(msg.Width, body)
	m.notifsPage.SetSize(msg.Width, body)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Page switching only from the top-level pages; the viewer and composer
	// own the keyboard while open.
	if m.mode == modeStories || m.mode == modeFeed || m.mode == modePlans ||
		m.mode == modeCommunities || m.mode == modeNotifs {
		switch msg.String() {
		case "tab":
			m.mode = nextMode(m.mode)
			return m, nil
		case "shift+tab":
			m.mode = prevMode(m.mode)
			return m, nil
		case "N":
			// In-flight guard: repeated presses must not fan out into
			// duplicate mark-all-read requests.
			if m.unread > 0 && !m.markingRead {
				m.markingRead = true
				return m, m.markAllReadCmd()
			}
			return m, nil
		case "r":
			if m.mode == modeStories {
				return m, m.refreshStoriesCmd()
			}
		case "q":
			if m.mode == modeStories {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeStories:
		m.carousel, cmd = m.carousel.Update(msg)
	case modeViewer:
		m.viewer, cmd = m.viewer.Update(msg)
	case modeComposer:
		m.composer, cmd = m.composer.Update(msg)
	case modeFeed:
		m.feed, cmd = m.feed.Update(msg)
	case modePlans:
		m.plans, cmd = m.plans.Update(msg)
	case modeCommunities:
		m.communities, cmd = m.communities.Update(msg)
	case modeNotifs:
		m.notifsPage, cmd = m.notifsPage.Update(msg)
	}
	return m, cmd
}

func (m Model) handleBoot(msg bootLoadedMsg) (tea.Model, tea.Cmd) {
	m.booting = false
	if msg.err != nil {
		return m.fail("Couldn't reach the server.", msg.err)
	}
	m.carousel.SetStories(msg.stories)
	m.feed.SetPosts(msg.posts)
	m.plans.SetPlans(msg.plans)
	m.communities.SetCommunities(msg.communities)
	m.notifs = msg.notifs
	m.unread = unreadCount(msg.notifs)
	m.notifsPage.SetNotifs(msg.notifs)
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.SetStories(msg.stories)
	return m, cmd
}

// handleStoryMutated resolves create/update/delete. Success pushes the fresh
// list everywhere and closes whichever surface initiated the mutation; the
// viewer never tries to keep its index across the re-sorted list.
func (m Model) handleStoryMutated(msg storyMutatedMsg) (tea.Model, tea.Cmd) {
	m.viewer.SetPending(false)
	m.composer.SetPending(false)

	if msg.err != nil {
		if msg.err == story.ErrBusy {
			m.notice = "Hold on, still working on the last request."
			return m, clearNoticeAfter(noticeTTL)
		}
		switch msg.op {
		case "create":
			m.composer.SetProblem("Upload failed. Check the server and try again.")
			m.log.Warn("story create failed", zap.Error(msg.err))
			return m, nil
		default:
			return m.fail("Couldn't save that change.", msg.err)
		}
	}

	m.errMsg = ""
	m.carousel.SetStories(msg.items)
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.SetStories(msg.items)
	cmds = append(cmds, cmd)

	switch msg.op {
	case "create":
		m.mode = modeStories
		m.notice = "Status posted."
	case "update":
		m.viewer, cmd = m.viewer.Close()
		cmds = append(cmds, cmd)
		m.mode = modeStories
		m.notice = "Status updated."
	case "delete":
		m.viewer, cmd = m.viewer.Close()
		cmds = append(cmds, cmd)
		m.mode = modeStories
		m.notice = "Status deleted."
	}
	cmds = append(cmds, clearNoticeAfter(noticeTTL))
	return m, tea.Batch(cmds...)
}

// fail surfaces a transient error banner. The banner clears on the notice
// timer or on the next successful operation, whichever comes first.
func (m Model) fail(friendly string, err error) (tea.Model, tea.Cmd) {
	m.errMsg = friendly
	m.notice = ""
	m.log.Warn(friendly, zap.Error(err))
	return m, clearNoticeAfter(noticeTTL)
}

func nextMode(mo mode) mode {
	switch mo {
	case modeStories:
		return modeFeed
	case modeFeed:
		return modePlans
	case modePlans:
		return modeCommunities
	case modeCommunities:
		return modeNotifs
	default:
		return modeStories
	}
}

func prevMode(mo mode) mode {
	switch mo {
	case modeStories:
		return modeNotifs
	case modeFeed:
		return modeStories
	case modePlans:
		return modeFeed
	case modeCommunities:
		return modePlans
	default:
		return modeCommunities
	}
}
