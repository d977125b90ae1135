package api

import (
	"context"
	"net/http"
)

// LearningPlan is a structured skill-learning roadmap.
type LearningPlan struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Goal        string     `json:"goal"`
	Skills      string     `json:"skills"`
	Image       string     `json:"image,omitempty"`
	Video       string     `json:"video,omitempty"`
	MediaType   string     `json:"mediaType,omitempty"`   // "IMAGE", "VIDEO" or "NONE"
	MediaSource string     `json:"mediaSource,omitempty"` // "LOCAL" or "REMOTE"
	UserEmail   string     `json:"userEmail,omitempty"`
	Steps       []PlanStep `json:"steps,omitempty"`
}

// PlanStep is one milestone within a learning plan.
type PlanStep struct {
	Topic       string `json:"topic"`
	Resources   string `json:"resources,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	MediaURL    string `json:"mediaUrl,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	MediaSource string `json:"mediaSource,omitempty"`
}

// ListPlans fetches all learning plans visible to the session user.
func (c *Client) ListPlans(ctx context.Context) ([]LearningPlan, error) {
	var plans []LearningPlan
	if err := c.getJSON(ctx, "list plans", "/learningplans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches a single learning plan by id.
func (c *Client) GetPlan(ctx context.Context, id string) (LearningPlan, error) {
	var plan LearningPlan
	if err := c.getJSON(ctx, "get plan", "/learningplans/"+id, &plan); err != nil {
		return LearningPlan{}, err
	}
	return plan, nil
}

// CreatePlan creates a learning plan and returns the stored copy.
func (c *Client) CreatePlan(ctx context.Context, plan LearningPlan) (LearningPlan, error) {
	var created LearningPlan
	if err := c.sendJSON(ctx, "create plan", http.MethodPost, "/learningplans", plan, &created); err != nil {
		return LearningPlan{}, err
	}
	return created, nil
}

// UpdatePlan replaces a learning plan by id.
func (c *Client) UpdatePlan(ctx context.Context, id string, plan LearningPlan) error {
	return c.sendJSON(ctx, "update plan", http.MethodPut, "/learningplans/"+id, plan, nil)
}

// DeletePlan removes a learning plan.
func (c *Client) DeletePlan(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "delete plan", http.MethodDelete, "/learningplans/"+id, nil, nil)
}
