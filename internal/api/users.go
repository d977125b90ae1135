package api

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

// AuthResponse is the backend's answer to login/register.
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// Profile is the session user's own profile.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
}

var welcomeRe = regexp.MustCompile(`Welcome back,\s*(.+)!`)

// UserName extracts the display name the backend embeds in the login
// greeting ("Welcome back, NAME!"). The login response carries no explicit
// name field, so this is the only place it can come from.
func (a AuthResponse) UserName() string {
	if m := welcomeRe.FindStringSubmatch(a.Message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.sendJSON(ctx, "login", http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Register creates a new account. The backend expects a follow-up Login;
// no token is issued on registration.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return c.sendJSON(ctx, "register", http.MethodPost, "/auth/register", payload, nil)
}

// GetProfile fetches the session user's profile.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := c.getJSON(ctx, "get profile", "/users/profile", &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
