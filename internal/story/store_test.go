package story

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsport/internal/api"
	"skillsport/internal/session"
)

type fakeBackend struct {
	mu      sync.Mutex
	items   []api.StoryItem
	failGet bool

	block   chan struct{} // when set, createStory parks until closed
	entered chan struct{} // closed when createStory first starts blocking
	once    sync.Once
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/story/getAllStatus":
			f.mu.Lock()
			fail := f.failGet
			items := append([]api.StoryItem(nil), f.items...)
			f.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(items)
		case r.URL.Path == "/api/story/createStory":
			if f.block != nil {
				f.once.Do(func() { close(f.entered) })
				<-f.block
			}
			f.mu.Lock()
			f.items = append(f.items, api.StoryItem{ID: "new", Description: r.FormValue("description"), Uname: r.FormValue("uname")})
			f.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/api/story/updateStory":
			var req struct{ ID, Description, Uname string }
			json.NewDecoder(r.Body).Decode(&req)
			f.mu.Lock()
			for i := range f.items {
				if f.items[i].ID == req.ID {
					f.items[i].Description = req.Description
				}
			}
			f.mu.Unlock()
		case r.URL.Path == "/api/story/deleteStory":
			id := r.URL.Query().Get("id")
			f.mu.Lock()
			kept := f.items[:0]
			for _, item := range f.items {
				if item.ID != id {
					kept = append(kept, item)
				}
			}
			f.items = kept
			f.mu.Unlock()
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestStore(t *testing.T, backend *fakeBackend) *Store {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	sess := &session.Context{Token: "tok", UserID: "u1", UserName: "alice"}
	client := api.New(api.Config{BaseURL: srv.URL + "/api"}, sess, nil)
	return NewStore(client, sess, nil)
}

func TestRefreshReversesBackendOrder(t *testing.T) {
	backend := &fakeBackend{items: []api.StoryItem{
		{ID: "1", Uname: "alice"},
		{ID: "2", Uname: "bob"},
		{ID: "3", Uname: "alice"},
	}}
	store := newTestStore(t, backend)

	require.NoError(t, store.Refresh(context.Background()))

	want := []api.StoryItem{
		{ID: "3", Uname: "alice"},
		{ID: "2", Uname: "bob"},
		{ID: "1", Uname: "alice"},
	}
	if diff := cmp.Diff(want, store.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshFailureKeepsPriorList(t *testing.T) {
	backend := &fakeBackend{items: []api.StoryItem{{ID: "1", Uname: "alice"}}}
	store := newTestStore(t, backend)
	require.NoError(t, store.Refresh(context.Background()))
	require.Equal(t, 1, store.Len())

	backend.mu.Lock()
	backend.failGet = true
	backend.mu.Unlock()

	err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, store.Len(), "failed refresh must not clear the list")
}

func TestCreateValidatesBeforeRequest(t *testing.T) {
	store := newTestStore(t, &fakeBackend{})

	err := store.Create(context.Background(), "", "/tmp/x.jpg")
	assert.ErrorIs(t, err, ErrIncomplete)
	err = store.Create(context.Background(), "caption", "")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestMutationRoundTripRefreshesList(t *testing.T) {
	backend := &fakeBackend{items: []api.StoryItem{{ID: "1", Description: "old", Uname: "alice"}}}
	store := newTestStore(t, backend)
	require.NoError(t, store.Refresh(context.Background()))

	require.NoError(t, store.Update(context.Background(), "1", "new"))
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Description)

	require.NoError(t, store.Delete(context.Background(), "1"))
	assert.Zero(t, store.Len())
}

func TestConcurrentMutationReturnsErrBusy(t *testing.T) {
	backend := &fakeBackend{
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	store := newTestStore(t, backend)

	img := writeTempImage(t)
	done := make(chan error, 1)
	go func() {
		done <- store.Create(context.Background(), "slow upload", img)
	}()

	// Once the upload reaches the backend the mutation slot is held.
	<-backend.entered
	err := store.Create(context.Background(), "dup", img)
	assert.ErrorIs(t, err, ErrBusy)

	close(backend.block)
	require.NoError(t, <-done)
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegdata"), 0o600))
	return path
}
