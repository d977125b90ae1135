package app

import "skillsport/internal/api"

// Results of background commands. Every message carries its error so the
// update loop is the single place failures surface.
type (
	bootLoadedMsg struct {
		stories     []api.StoryItem
		posts       []api.Post
		plans       []api.LearningPlan
		notifs      []api.Notification
		communities []api.Community
		err         error
	}

	storiesRefreshedMsg struct {
		items []api.StoryItem
		err   error
	}

	// storyMutatedMsg resolves a create, caption save or delete. The fresh
	// list rides along so the carousel and viewer update in one step.
	storyMutatedMsg struct {
		op    string // "create", "update", "delete"
		items []api.StoryItem
		err   error
	}

	postsRefreshedMsg struct {
		posts []api.Post
		err   error
	}

	commentsLoadedMsg struct {
		postID   string
		comments []api.Comment
		err      error
	}

	commentAddedMsg struct {
		postID   string
		comments []api.Comment
		err      error
	}

	planLoadedMsg struct {
		plan api.LearningPlan
		err  error
	}

	notifsMarkedMsg struct {
		notifs []api.Notification
		err    error
	}

	// communityLoadedMsg resolves opening a community: the community itself
	// plus its post board in one message.
	communityLoadedMsg struct {
		community api.Community
		posts     []api.CommunityPost
		err       error
	}

	// communityChangedMsg resolves a join or leave with the updated roster.
	communityChangedMsg struct {
		op        string // "join", "leave"
		community api.Community
		err       error
	}

	// communityPostsMsg resolves a board refresh, e.g. after a like.
	communityPostsMsg struct {
		communityID string
		posts       []api.CommunityPost
		err         error
	}

	clearNoticeMsg struct{}
)
