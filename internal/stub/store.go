// Package stub is an in-memory SkillSport backend for development and
// tests. It speaks the same wire contract as the real server but keeps
// everything in process memory; restarting it wipes all data.
package stub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillsport/internal/api"
)

// storyTTL mirrors the production expiry window for statuses.
const storyTTL = 24 * time.Hour

var (
	errNotFound      = errors.New("not found")
	errBadLogin      = errors.New("invalid email or password")
	errNotOwner      = errors.New("not the owner")
	errEmailTaken    = errors.New("email already registered")
	errInvalidToken  = errors.New("invalid token")
	errAlreadyMember = errors.New("already a member")
	errNotMember     = errors.New("not a member")
	errAlreadyLiked  = errors.New("already liked")
)

type user struct {
	ID       string
	Username string
	Email    string
	Password string
}

type storedStory struct {
	api.StoryItem
	Image []byte
}

// memStore holds all stub state behind one mutex. Handler volume is a few
// requests per second at most; contention is not a concern.
type memStore struct {
	mu sync.Mutex

	users  map[string]user   // by id
	tokens map[string]string // token -> user id

	stories []storedStory
	posts   []api.Post
	likes   map[string]map[string]bool // post id -> liker ids
	comment map[string][]api.Comment   // post id -> comments
	notifs  []api.Notification
	plans   []api.LearningPlan

	communities    []api.Community
	communityPosts []api.CommunityPost
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]user),
		tokens:  make(map[string]string),
		likes:   make(map[string]map[string]bool),
		comment: make(map[string][]api.Comment),
	}
}

func (s *memStore) register(username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return errEmailTaken
		}
	}
	id := uuid.NewString()
	s.users[id] = user{ID: id, Username: username, Email: email, Password: password}
	return nil
}

func (s *memStore) login(email, password string) (user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			token := uuid.NewString()
			s.tokens[token] = u.ID
			return u, token, nil
		}
	}
	return user{}, "", errBadLogin
}

func (s *memStore) userForToken(token string) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return user{}, errInvalidToken
	}
	u, ok := s.users[id]
	if !ok {
		return user{}, errInvalidToken
	}
	return u, nil
}

// listStories returns unexpired stories oldest-first, the way the real
// backend orders them.
func (s *memStore) listStories() []api.StoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	out := make([]api.StoryItem, 0, len(s.stories))
	for _, st := range s.stories {
		if st.ExpiredAt > now {
			out = append(out, st.StoryItem)
		}
	}
	return out
}

func (s *memStore) createStory(description, userID, uname string, image []byte) api.StoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := api.StoryItem{
		ID:          uuid.NewString(),
		Description: description,
		Uname:       uname,
		UserID:      userID,
		ExpiredAt:   time.Now().Add(storyTTL).UnixMilli(),
	}
	s.stories = append(s.stories, storedStory{StoryItem: item, Image: image})
	return item
}

func (s *memStore) updateStory(id, description, uname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.stories {
		if st.ID == id {
			if strings.TrimSpace(st.Uname) != strings.TrimSpace(uname) {
				return errNotOwner
			}
			s.stories[i].Description = description
			return nil
		}
	}
	return errNotFound
}

func (s *memStore) deleteStory(id, uname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.stories {
		if st.ID == id {
			if strings.TrimSpace(st.Uname) != strings.TrimSpace(uname) {
				return errNotOwner
			}
			s.stories = append(s.stories[:i], s.stories[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *memStore) storyImage(id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.stories {
		if st.ID == id {
			return st.Image, nil
		}
	}
	return nil, errNotFound
}

// listPosts decorates each post with like data for the requesting user.
func (s *memStore) listPosts(viewerID string) []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Post, len(s.posts))
	for i, p := range s.posts {
		p.LikeCount = len(s.likes[p.ID])
		p.LikedByUser = s.likes[p.ID][viewerID]
		out[i] = p
	}
	return out
}

func (s *memStore) createPost(p api.Post) api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.posts = append(s.posts, p)
	return p
}

func (s *memStore) toggleLike(postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.findPost(postID)
	if !ok {
		return errNotFound
	}
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[string]bool)
	}
	if s.likes[postID][userID] {
		delete(s.likes[postID], userID)
		return nil
	}
	s.likes[postID][userID] = true
	s.notify(post, userID, "LIKE", "")
	return nil
}

func (s *memStore) addComment(postID, userID, username, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.findPost(postID)
	if !ok {
		return errNotFound
	}
	s.comment[postID] = append(s.comment[postID], api.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Username:  username,
		Comment:   text,
		CreatedAt: time.Now().UnixMilli(),
	})
	s.notify(post, userID, "COMMENT", text)
	return nil
}

func (s *memStore) comments(postID string) []api.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Comment(nil), s.comment[postID]...)
}

// notify records a like/comment event for the post owner. Self-actions are
// not announced. Caller holds the lock.
func (s *memStore) notify(post api.Post, actorID, kind, content string) {
	ownerID := ""
	for _, u := range s.users {
		if strings.EqualFold(u.Email, post.UserEmail) {
			ownerID = u.ID
			break
		}
	}
	if ownerID == "" || ownerID == actorID {
		return
	}
	s.notifs = append(s.notifs, api.Notification{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		ActorID: actorID,
		PostID:  post.ID,
		Type:    kind,
		Content: content,
	})
}

func (s *memStore) notifications(userID string) []api.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Notification, 0)
	for i := len(s.notifs) - 1; i >= 0; i-- {
		if s.notifs[i].UserID == userID {
			out = append(out, s.notifs[i])
		}
	}
	return out
}

func (s *memStore) markRead(userID, notifID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifs {
		if n.ID == notifID && n.UserID == userID {
			s.notifs[i].Read = true
			return nil
		}
	}
	return errNotFound
}

func (s *memStore) markAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifs {
		if n.UserID == userID {
			s.notifs[i].Read = true
		}
	}
}

func (s *memStore) listPlans() []api.LearningPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.LearningPlan(nil), s.plans...)
}

func (s *memStore) getPlan(id string) (api.LearningPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return api.LearningPlan{}, errNotFound
}

func (s *memStore) createPlan(p api.LearningPlan) api.LearningPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.plans = append(s.plans, p)
	return p
}

func (s *memStore) updatePlan(id string, p api.LearningPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.plans {
		if existing.ID == id {
			p.ID = id
			s.plans[i] = p
			return nil
		}
	}
	return errNotFound
}

func (s *memStore) deletePlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.plans {
		if p.ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *memStore) listCommunities() []api.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Community(nil), s.communities...)
}

func (s *memStore) getCommunity(id string) (api.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.findCommunity(id)
	if !ok {
		return api.Community{}, errNotFound
	}
	return c, nil
}

func (s *memStore) createCommunity(c api.Community) api.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.communities = append(s.communities, c)
	return c
}

// joinCommunity keys membership on the display name, like the production
// backend. Joining twice is rejected.
func (s *memStore) joinCommunity(id, userName string) (api.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.communities {
		if c.ID != id {
			continue
		}
		if c.HasMember(userName) {
			return api.Community{}, errAlreadyMember
		}
		s.communities[i].Members = append(s.communities[i].Members, userName)
		return s.communities[i], nil
	}
	return api.Community{}, errNotFound
}

func (s *memStore) leaveCommunity(id, userName string) (api.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.communities {
		if c.ID != id {
			continue
		}
		for j, m := range c.Members {
			if m == userName {
				s.communities[i].Members = append(c.Members[:j], c.Members[j+1:]...)
				return s.communities[i], nil
			}
		}
		return api.Community{}, errNotMember
	}
	return api.Community{}, errNotFound
}

func (s *memStore) listCommunityPosts(communityID string) ([]api.CommunityPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findCommunity(communityID); !ok {
		return nil, errNotFound
	}
	out := make([]api.CommunityPost, 0)
	for _, p := range s.communityPosts {
		if p.CommunityID == communityID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) createCommunityPost(communityID string, p api.CommunityPost) (api.CommunityPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findCommunity(communityID); !ok {
		return api.CommunityPost{}, errNotFound
	}
	p.ID = uuid.NewString()
	p.CommunityID = communityID
	p.Date = time.Now().Format(time.RFC3339)
	s.communityPosts = append(s.communityPosts, p)
	return p, nil
}

// likeCommunityPost is one-shot: a second like from the same name fails.
func (s *memStore) likeCommunityPost(communityID, postID, userName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.communityPosts {
		if p.ID != postID || p.CommunityID != communityID {
			continue
		}
		if p.LikedByUser(userName) {
			return errAlreadyLiked
		}
		s.communityPosts[i].LikedBy = append(p.LikedBy, userName)
		s.communityPosts[i].Likes++
		return nil
	}
	return errNotFound
}

// findCommunity assumes the caller holds the lock.
func (s *memStore) findCommunity(id string) (api.Community, bool) {
	for _, c := range s.communities {
		if c.ID == id {
			return c, true
		}
	}
	return api.Community{}, false
}

// findPost assumes the caller holds the lock.
func (s *memStore) findPost(id string) (api.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return api.Post{}, false
}
