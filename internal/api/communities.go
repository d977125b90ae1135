package api

import (
	"context"
	"net/http"
	"net/url"
)

// Community is a sport community: a named group with a member roster and
// its own post board.
type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// HasMember reports whether the given display name is on the roster.
func (c Community) HasMember(userName string) bool {
	for _, m := range c.Members {
		if m == userName {
			return true
		}
	}
	return false
}

// CommunityPost is a post on a community's board. Likes are one-shot: the
// backend rejects a second like from the same user.
type CommunityPost struct {
	ID          string   `json:"id"`
	CommunityID string   `json:"communityId"`
	Author      string   `json:"author"`
	Content     string   `json:"content"`
	Image       string   `json:"image,omitempty"`
	Date        string   `json:"date,omitempty"`
	Likes       int      `json:"likes"`
	LikedBy     []string `json:"likedBy,omitempty"`
}

// LikedByUser reports whether the given display name already liked the post.
func (p CommunityPost) LikedByUser(userName string) bool {
	for _, name := range p.LikedBy {
		if name == userName {
			return true
		}
	}
	return false
}

// ListCommunities fetches every community.
func (c *Client) ListCommunities(ctx context.Context) ([]Community, error) {
	var out []Community
	if err := c.getJSON(ctx, "list communities", "/communities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCommunity fetches one community by id.
func (c *Client) GetCommunity(ctx context.Context, id string) (Community, error) {
	var out Community
	if err := c.getJSON(ctx, "get community", "/communities/"+id, &out); err != nil {
		return Community{}, err
	}
	return out, nil
}

// CreateCommunity registers a new community and returns the stored copy.
func (c *Client) CreateCommunity(ctx context.Context, community Community) (Community, error) {
	var created Community
	if err := c.sendJSON(ctx, "create community", http.MethodPost, "/communities", community, &created); err != nil {
		return Community{}, err
	}
	return created, nil
}

// JoinCommunity adds the named user to the roster and returns the updated
// community. The backend keys membership on the display name.
func (c *Client) JoinCommunity(ctx context.Context, id, userName string) (Community, error) {
	return c.memberOp(ctx, "join community", id, "join", userName)
}

// LeaveCommunity removes the named user from the roster.
func (c *Client) LeaveCommunity(ctx context.Context, id, userName string) (Community, error) {
	return c.memberOp(ctx, "leave community", id, "leave", userName)
}

func (c *Client) memberOp(ctx context.Context, op, id, action, userName string) (Community, error) {
	q := url.Values{}
	q.Set("userName", userName)
	var out Community
	err := c.sendJSON(ctx, op, http.MethodPost, "/communities/"+id+"/"+action+"?"+q.Encode(), nil, &out)
	if err != nil {
		return Community{}, err
	}
	return out, nil
}

// CommunityPosts fetches a community's board.
func (c *Client) CommunityPosts(ctx context.Context, id string) ([]CommunityPost, error) {
	var out []CommunityPost
	if err := c.getJSON(ctx, "list community posts", "/communities/"+id+"/posts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCommunityPost publishes a post to a community's board.
func (c *Client) CreateCommunityPost(ctx context.Context, communityID string, post CommunityPost) (CommunityPost, error) {
	var created CommunityPost
	err := c.sendJSON(ctx, "create community post", http.MethodPost,
		"/communities/"+communityID+"/posts", post, &created)
	if err != nil {
		return CommunityPost{}, err
	}
	return created, nil
}

// LikeCommunityPost records a like. Unlike feed likes this does not toggle;
// a repeat like is rejected by the backend.
func (c *Client) LikeCommunityPost(ctx context.Context, communityID, postID, userName string) error {
	q := url.Values{}
	q.Set("userName", userName)
	return c.sendJSON(ctx, "like community post", http.MethodPost,
		"/communities/"+communityID+"/posts/"+postID+"/like?"+q.Encode(), nil, nil)
}
