// Package story owns the client-side list of ephemeral statuses.
// The list is replace-on-fetch: every successful mutation triggers a full
// re-fetch instead of patching individual items, so the UI never has to
// merge. The viewer and carousel only read the list.
package story

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"skillsport/internal/api"
	"skillsport/internal/session"
)

// ErrBusy is returned when a mutation is requested while another one is
// still in flight. Rapid repeated submissions must not fan out into
// duplicate requests.
var ErrBusy = errors.New("another story request is in flight")

// ErrIncomplete is returned by Create when the caption or image is missing.
// Validation happens before any request is issued.
var ErrIncomplete = errors.New("a caption and an image are both required")

// Store fetches and mutates the story list. Safe for concurrent use:
// mutations run inside bubbletea commands, which are goroutines.
type Store struct {
	client  *api.Client
	session *session.Context
	log     *zap.Logger

	mu    sync.Mutex
	items []api.StoryItem
	busy  bool
}

// NewStore creates a store bound to the given API client and session.
func NewStore(client *api.Client, sess *session.Context, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{client: client, session: sess, log: log}
}

// Items returns a copy of the current list, most recent first.
func (s *Store) Items() []api.StoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.StoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current list length.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Refresh replaces the list with the backend's current state, reversed so
// the most recent story is first. On failure the prior list is untouched.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.client.ListStatuses(ctx)
	if err != nil {
		s.log.Warn("story refresh failed", zap.Error(err))
		return err
	}
	reversed := make([]api.StoryItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	s.mu.Lock()
	s.items = reversed
	s.mu.Unlock()
	s.log.Debug("story list refreshed", zap.Int("count", len(reversed)))
	return nil
}

// Create validates and uploads a new story, then re-fetches the list.
func (s *Store) Create(ctx context.Context, caption, imagePath string) error {
	if caption == "" || imagePath == "" {
		return ErrIncomplete
	}
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.client.CreateStory(ctx, caption, imagePath, s.session.UserID, s.session.UserName); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Update changes a story's caption, then re-fetches the list. The item's
// position may shift since the list re-sorts most-recent-first; callers
// must not assume index stability across the refresh.
func (s *Store) Update(ctx context.Context, id, caption string) error {
	item, ok := s.find(id)
	if !ok {
		return errors.New("story no longer exists")
	}
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.client.UpdateStory(ctx, id, caption, item.Uname); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes a story, then re-fetches the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	item, ok := s.find(id)
	if !ok {
		return errors.New("story no longer exists")
	}
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := s.client.DeleteStory(ctx, id, item.Uname); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// acquire claims the single mutation slot.
func (s *Store) acquire() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ErrBusy
	}
	s.busy = true
	return func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}, nil
}

func (s *Store) find(id string) (api.StoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return api.StoryItem{}, false
}
