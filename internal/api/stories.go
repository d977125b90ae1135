package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// StoryItem is an ephemeral status as the backend serializes it.
// The associated image is not inlined; fetch it via ImageURL.
type StoryItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Uname       string `json:"uname"`
	UserID      string `json:"userId"`
	// ExpiredAt is epoch milliseconds; expiration is enforced server-side
	// and never evaluated by the client.
	ExpiredAt int64 `json:"expiredAt,omitempty"`
}

// OwnedBy reports whether the story belongs to the given display name.
// Names are compared trimmed; the backend stores them with stray whitespace.
func (s StoryItem) OwnedBy(uname string) bool {
	return strings.TrimSpace(s.Uname) == strings.TrimSpace(uname) && strings.TrimSpace(uname) != ""
}

// ListStatuses fetches every current story, oldest-first as the backend
// returns them. Callers wanting display order reverse the slice.
func (c *Client) ListStatuses(ctx context.Context) ([]StoryItem, error) {
	var items []StoryItem
	if err := c.getJSON(ctx, "list statuses", "/story/getAllStatus", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateStory uploads a new story from an image file on disk.
func (c *Client) CreateStory(ctx context.Context, caption, imagePath, userID, uname string) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	defer f.Close()
	return c.CreateStoryFrom(ctx, caption, filepath.Base(imagePath), f, userID, uname)
}

// CreateStoryFrom uploads a new story from an arbitrary image reader.
// The multipart fields mirror the backend contract: image, description,
// userid, uname.
func (c *Client) CreateStoryFrom(ctx context.Context, caption, filename string, image io.Reader, userID, uname string) error {
	const op = "create story"

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for field, value := range map[string]string{
		"description": caption,
		"userid":      userID,
		"uname":       uname,
	} {
		if err := w.WriteField(field, value); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/story/createStory", &body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.roundTrip(op, req, nil)
}

// UpdateStory replaces a story's caption. Only the caption is mutable.
func (c *Client) UpdateStory(ctx context.Context, id, caption, uname string) error {
	payload := map[string]string{
		"id":          id,
		"description": caption,
		"uname":       uname,
	}
	return c.sendJSON(ctx, "update story", http.MethodPatch, "/story/updateStory", payload, nil)
}

// DeleteStory removes a story. The backend keys the delete on both the id
// and the owner name.
func (c *Client) DeleteStory(ctx context.Context, id, uname string) error {
	q := url.Values{}
	q.Set("id", id)
	q.Set("uname", uname)
	req, err := c.newRequest(ctx, http.MethodDelete, "/story/deleteStory?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return c.roundTrip("delete story", req, nil)
}

// ImageURL returns the URL of a story's image. Images live at the server
// root (outside the API prefix), keyed by story id.
func (c *Client) ImageURL(id string) string {
	return c.origin() + "/status/" + id + ".jpg"
}

// FetchImage downloads a story's image bytes.
func (c *Client) FetchImage(ctx context.Context, id string) ([]byte, error) {
	const op = "fetch image"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if token := c.tokens.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Op: op, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}
