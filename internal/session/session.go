// Package session holds the authenticated user's identity for the lifetime
// of the process. The token, user id and display name are injected
// explicitly into every component that needs them; nothing reads ambient
// global state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Context is the client-held view of the authenticated session.
// The backend remains authoritative; a stale token here simply produces
// 401s that the UI surfaces.
type Context struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// AuthToken implements api.TokenSource.
func (c *Context) AuthToken() string {
	if c == nil {
		return ""
	}
	return c.Token
}

// Authenticated reports whether a token is present. Validity is the
// backend's call.
func (c *Context) Authenticated() bool {
	return c != nil && c.Token != ""
}

// Owns reports whether the session user is the owner behind the given
// display name. Owner-only controls (story edit/delete) are gated on this;
// the backend re-checks on every mutation.
func (c *Context) Owns(uname string) bool {
	if c == nil || strings.TrimSpace(c.UserName) == "" {
		return false
	}
	return strings.TrimSpace(uname) == strings.TrimSpace(c.UserName)
}

// DefaultPath returns the session file location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".skillsport", "session.json"), nil
}

// Load reads a persisted session. A missing file yields an empty,
// unauthenticated session rather than an error.
func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Context{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &ctx, nil
}

// Save persists the session. The file is user-only: it contains the token.
func Save(path string, ctx *Context) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session, logging the user out locally.
func Clear(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
