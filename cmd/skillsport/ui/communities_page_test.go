package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skillsport/internal/api"
)

func testCommunities() []api.Community {
	return []api.Community{
		{ID: "c1", Name: "Sunday Runners", Description: "easy pace", Members: []string{"bob"}},
		{ID: "c2", Name: "Court Kings", Description: "pickup hoops", Members: []string{"alice"}},
	}
}

func communityKey(m CommunitiesModel, k string) (CommunitiesModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestCommunitiesEnterRequestsDetail(t *testing.T) {
	m := NewCommunitiesModel("alice", DefaultStyles())
	m.SetSize(80, 24)
	m.SetCommunities(testCommunities())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("enter emitted %d messages, want 1", len(msgs))
	}
	load, ok := msgs[0].(CommunityLoadMsg)
	if !ok {
		t.Fatalf("enter emitted %T, want CommunityLoadMsg", msgs[0])
	}
	if load.ID != "c1" {
		t.Fatalf("load id = %q, want c1", load.ID)
	}
}

func TestCommunitiesJoinLeaveGuard(t *testing.T) {
	m := NewCommunitiesModel("alice", DefaultStyles())
	m.SetSize(80, 24)
	communities := testCommunities()
	m.ShowDetail(communities[0], nil) // alice is not a member

	m, cmd := communityKey(m, "J")
	if _, ok := singleMsg(t, cmd).(CommunityJoinMsg); !ok {
		t.Fatalf("J did not emit a join request")
	}

	// Request in flight: a second press is a no-op.
	m, cmd = communityKey(m, "J")
	if cmd != nil {
		t.Fatalf("J emitted a duplicate join while pending")
	}

	// Joined: J is a no-op, L requests the leave.
	m.SetPending(false)
	m.SetDetail(api.Community{ID: "c1", Name: "Sunday Runners", Members: []string{"bob", "alice"}})
	m, cmd = communityKey(m, "J")
	if cmd != nil {
		t.Fatalf("J emitted a join for an existing member")
	}
	_, cmd = communityKey(m, "L")
	if _, ok := singleMsg(t, cmd).(CommunityLeaveMsg); !ok {
		t.Fatalf("L did not emit a leave request")
	}
}

func TestCommunitiesLikeIsOneShot(t *testing.T) {
	m := NewCommunitiesModel("alice", DefaultStyles())
	m.SetSize(80, 24)
	posts := []api.CommunityPost{
		{ID: "p1", CommunityID: "c1", Author: "bob", Content: "hill repeats?"},
	}
	m.ShowDetail(testCommunities()[0], posts)

	m, cmd := communityKey(m, "l")
	like, ok := singleMsg(t, cmd).(CommunityLikePostMsg)
	if !ok {
		t.Fatalf("l did not emit a like request")
	}
	if like.CommunityID != "c1" || like.PostID != "p1" {
		t.Fatalf("like = %+v, want c1/p1", like)
	}

	// Pending blocks a repeat.
	m, cmd = communityKey(m, "l")
	if cmd != nil {
		t.Fatalf("l emitted a duplicate like while pending")
	}

	// Once liked the action stays off even after the request resolves.
	m.SetPending(false)
	m.SetPosts("c1", []api.CommunityPost{
		{ID: "p1", CommunityID: "c1", Author: "bob", Content: "hill repeats?", Likes: 1, LikedBy: []string{"alice"}},
	})
	_, cmd = communityKey(m, "l")
	if cmd != nil {
		t.Fatalf("l emitted a like for an already-liked post")
	}
}

func TestCommunitiesEscReturnsToCatalogue(t *testing.T) {
	m := NewCommunitiesModel("alice", DefaultStyles())
	m.SetSize(80, 24)
	m.SetCommunities(testCommunities())
	m.ShowDetail(testCommunities()[0], nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Back on the catalogue, enter requests a detail load again.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := singleMsg(t, cmd).(CommunityLoadMsg); !ok {
		t.Fatalf("enter after esc did not reopen the catalogue")
	}
}

// singleMsg runs cmd and asserts it produced exactly one message.
func singleMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("emitted %d messages, want 1", len(msgs))
	}
	return msgs[0]
}
