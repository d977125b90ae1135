package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"skillsport/internal/api"
)

// bootCmd loads everything the shell shows on startup in one round of
// parallel requests. Stories failing is fatal to the boot; the side panes
// degrade quietly to empty.
func (m Model) bootCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		var out bootLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := m.store.Refresh(gctx); err != nil {
				return err
			}
			out.stories = m.store.Items()
			return nil
		})
		g.Go(func() error {
			posts, err := m.client.ListPosts(gctx)
			if err == nil {
				out.posts = posts
			}
			return nil
		})
		g.Go(func() error {
			plans, err := m.client.ListPlans(gctx)
			if err == nil {
				out.plans = plans
			}
			return nil
		})
		g.Go(func() error {
			notifs, err := m.client.Notifications(gctx)
			if err == nil {
				out.notifs = notifs
			}
			return nil
		})
		g.Go(func() error {
			communities, err := m.client.ListCommunities(gctx)
			if err == nil {
				out.communities = communities
			}
			return nil
		})
		out.err = g.Wait()
		return out
	}
}

func (m Model) refreshStoriesCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.store.Refresh(context.Background())
		return storiesRefreshedMsg{items: m.store.Items(), err: err}
	}
}

func (m Model) createStoryCmd(caption, imagePath string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Create(context.Background(), caption, imagePath)
		return storyMutatedMsg{op: "create", items: m.store.Items(), err: err}
	}
}

func (m Model) saveStoryCmd(id, caption string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Update(context.Background(), id, caption)
		return storyMutatedMsg{op: "update", items: m.store.Items(), err: err}
	}
}

func (m Model) deleteStoryCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Delete(context.Background(), id)
		return storyMutatedMsg{op: "delete", items: m.store.Items(), err: err}
	}
}

// toggleLikeCmd flips the like then re-fetches the feed so counts stay
// backend-authoritative.
func (m Model) toggleLikeCmd(postID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.ToggleLike(ctx, postID); err != nil {
			return postsRefreshedMsg{err: err}
		}
		posts, err := m.client.ListPosts(ctx)
		return postsRefreshedMsg{posts: posts, err: err}
	}
}

func (m Model) loadCommentsCmd(postID string) tea.Cmd {
	return func() tea.Msg {
		comments, err := m.client.ListComments(context.Background(), postID)
		return commentsLoadedMsg{postID: postID, comments: comments, err: err}
	}
}

func (m Model) addCommentCmd(postID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.AddComment(ctx, postID, text); err != nil {
			return commentAddedMsg{postID: postID, err: err}
		}
		comments, err := m.client.ListComments(ctx, postID)
		return commentAddedMsg{postID: postID, comments: comments, err: err}
	}
}

func (m Model) loadPlanCmd(id string) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.client.GetPlan(context.Background(), id)
		return planLoadedMsg{plan: plan, err: err}
	}
}

// loadCommunityCmd fetches a community and its board together.
func (m Model) loadCommunityCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		var out communityLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			community, err := m.client.GetCommunity(gctx, id)
			out.community = community
			return err
		})
		g.Go(func() error {
			posts, err := m.client.CommunityPosts(gctx, id)
			out.posts = posts
			return err
		})
		out.err = g.Wait()
		return out
	}
}

func (m Model) joinCommunityCmd(id string) tea.Cmd {
	return func() tea.Msg {
		community, err := m.client.JoinCommunity(context.Background(), id, m.sess.UserName)
		return communityChangedMsg{op: "join", community: community, err: err}
	}
}

func (m Model) leaveCommunityCmd(id string) tea.Cmd {
	return func() tea.Msg {
		community, err := m.client.LeaveCommunity(context.Background(), id, m.sess.UserName)
		return communityChangedMsg{op: "leave", community: community, err: err}
	}
}

// likeCommunityPostCmd records the like then re-fetches the board so counts
// stay backend-authoritative.
func (m Model) likeCommunityPostCmd(communityID, postID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.LikeCommunityPost(ctx, communityID, postID, m.sess.UserName); err != nil {
			return communityPostsMsg{communityID: communityID, err: err}
		}
		posts, err := m.client.CommunityPosts(ctx, communityID)
		return communityPostsMsg{communityID: communityID, posts: posts, err: err}
	}
}

func (m Model) markOneReadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.MarkNotificationRead(ctx, id); err != nil {
			return notifsMarkedMsg{err: err}
		}
		notifs, err := m.client.Notifications(ctx)
		return notifsMarkedMsg{notifs: notifs, err: err}
	}
}

func (m Model) markAllReadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.MarkAllNotificationsRead(ctx); err != nil {
			return notifsMarkedMsg{err: err}
		}
		notifs, err := m.client.Notifications(ctx)
		return notifsMarkedMsg{notifs: notifs, err: err}
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

func unreadCount(notifs []api.Notification) int {
	n := 0
	for _, notif := range notifs {
		if !notif.Read {
			n++
		}
	}
	return n
}
