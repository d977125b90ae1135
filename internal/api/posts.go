package api

import (
	"context"
	"net/http"
)

// Post is a feed entry.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
	Public      bool   `json:"public"`
	UserEmail   string `json:"userEmail"`
	LikeCount   int    `json:"likeCount"`
	LikedByUser bool   `json:"likedByUser"`
}

// Comment is a single comment on a post.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Notification is a like/comment event aimed at the session user.
type Notification struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	ActorID string `json:"actorId"`
	PostID  string `json:"postId"`
	Type    string `json:"type"` // "LIKE" or "COMMENT"
	Content string `json:"content,omitempty"`
	Read    bool   `json:"read"`
}

// ListPosts fetches the post feed.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "list posts", "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a post and returns the stored copy.
func (c *Client) CreatePost(ctx context.Context, post Post) (Post, error) {
	var created Post
	if err := c.sendJSON(ctx, "create post", http.MethodPost, "/posts", post, &created); err != nil {
		return Post{}, err
	}
	return created, nil
}

// ToggleLike flips the session user's like on a post.
func (c *Client) ToggleLike(ctx context.Context, postID string) error {
	return c.sendJSON(ctx, "toggle like", http.MethodPost, "/likecomment/toggle-like/"+postID, nil, nil)
}

// ListComments fetches the comments for a post.
func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	var comments []Comment
	if err := c.getJSON(ctx, "list comments", "/likecomment/comments/"+postID, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment.
func (c *Client) AddComment(ctx context.Context, postID, text string) error {
	payload := map[string]string{"comment": text}
	return c.sendJSON(ctx, "add comment", http.MethodPost, "/likecomment/comment/"+postID, payload, nil)
}

// Notifications fetches the session user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifs []Notification
	if err := c.getJSON(ctx, "list notifications", "/likecomment/notifications", &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "mark notification read", http.MethodPut, "/likecomment/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.sendJSON(ctx, "mark notifications read", http.MethodPut, "/likecomment/notifications/read-all", nil, nil)
}
