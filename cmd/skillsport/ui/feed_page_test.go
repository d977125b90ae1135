package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

func testPosts() []api.Post {
	return []api.Post{
		{ID: "p1", Title: "Free throw form", Content: "elbow in", UserEmail: "alice@x.io", LikeCount: 2},
		{ID: "p2", Title: "Juggling basics", Content: "start with two", UserEmail: "bob@x.io"},
	}
}

func TestFeedLikeEmitsOnceWhileInFlight(t *testing.T) {
	m := NewFeedModel(DefaultStyles())
	m.SetPosts(testPosts())
	m.SetSize(80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	msgs := collect(cmd)
	like, ok := msgs[0].(FeedToggleLikeMsg)
	if !ok {
		t.Fatalf("like emitted %T, want FeedToggleLikeMsg", msgs[0])
	}
	if like.PostID != "p1" {
		t.Fatalf("FeedToggleLikeMsg.PostID = %q, want p1", like.PostID)
	}

	// A second like before the first resolves must not fire.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if cmd != nil {
		t.Fatalf("like while pending produced a command")
	}
}

func TestFeedCommentFlow(t *testing.T) {
	m := NewFeedModel(DefaultStyles())
	m.SetPosts(testPosts())
	m.SetSize(80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	msgs := collect(cmd)
	load, ok := msgs[0].(FeedLoadCommentsMsg)
	if !ok || load.PostID != "p1" {
		t.Fatalf("expand emitted %+v, want FeedLoadCommentsMsg{p1}", msgs[0])
	}

	m.SetComments("p1", []api.Comment{{Username: "bob", Comment: "nice form"}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")})
	if !m.commenting {
		t.Fatalf("comment entry did not activate")
	}
	m.commentInput.SetValue("thanks!")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	add, ok := collect(cmd)[0].(FeedAddCommentMsg)
	if !ok {
		t.Fatalf("comment submit emitted wrong type")
	}
	if add.PostID != "p1" || add.Text != "thanks!" {
		t.Fatalf("FeedAddCommentMsg = %+v", add)
	}

	// The shell acknowledges the post; entry mode ends and the draft clears.
	m.SetPending(false)
	m.StopCommenting()
	if m.commenting || m.commentInput.Value() != "" {
		t.Fatalf("comment entry state survived StopCommenting")
	}
}

func TestFeedBlankCommentIgnored(t *testing.T) {
	m := NewFeedModel(DefaultStyles())
	m.SetPosts(testPosts())
	m.SetSize(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("C")})
	m.commentInput.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("blank comment produced a command")
	}
}
