package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"skillsport/internal/api"
)

// PlansLoadDetailMsg asks the shell to fetch a plan's full steps.
type PlansLoadDetailMsg struct {
	PlanID string
}

type planListItem struct {
	plan api.LearningPlan
}

func (it planListItem) Title() string { return it.plan.Title }
func (it planListItem) Description() string {
	return fmt.Sprintf("%s · %s", Truncate(it.plan.Goal, 40), it.plan.UserEmail)
}
func (it planListItem) FilterValue() string { return it.plan.Title + " " + it.plan.Skills }

// PlansModel shows the learning-plan catalogue with a markdown detail pane.
type PlansModel struct {
	list     list.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer
	showing  bool // detail pane active
	styles   Styles
	width    int
	height   int
}

// NewPlansModel creates an empty plans page.
func NewPlansModel(styles Styles) PlansModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Learning Plans"
	l.SetShowStatusBar(false)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return PlansModel{list: l, renderer: renderer, styles: styles}
}

// SetPlans replaces the catalogue.
func (m *PlansModel) SetPlans(plans []api.LearningPlan) {
	items := make([]list.Item, len(plans))
	for i, plan := range plans {
		items[i] = planListItem{plan: plan}
	}
	m.list.SetItems(items)
}

// ShowDetail renders a fully loaded plan into the detail pane.
func (m *PlansModel) ShowDetail(plan api.LearningPlan) {
	md := planMarkdown(plan)
	out := md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			out = rendered
		}
	}
	m.detail = viewport.New(m.width, max(m.height-2, 4))
	m.detail.SetContent(out)
	m.showing = true
}

// SetSize updates the drawing area.
func (m *PlansModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
	if m.showing {
		m.detail.Width = w
		m.detail.Height = max(h-2, 4)
	}
}

// Update handles list navigation and detail toggling.
func (m PlansModel) Update(msg tea.Msg) (PlansModel, tea.Cmd) {
	if m.showing {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "q":
				m.showing = false
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if it, ok := m.list.SelectedItem().(planListItem); ok {
			return m, emit(PlansLoadDetailMsg{PlanID: it.plan.ID})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders either the catalogue or the detail pane.
func (m PlansModel) View() string {
	if m.showing {
		return m.detail.View() + "\n" + m.styles.Muted.Render("↑/↓ scroll · esc back")
	}
	return m.list.View()
}

// planMarkdown lays a plan out as a markdown document for glamour.
func planMarkdown(plan api.LearningPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", plan.Title)
	if plan.Goal != "" {
		fmt.Fprintf(&sb, "**Goal:** %s\n\n", plan.Goal)
	}
	if plan.Skills != "" {
		fmt.Fprintf(&sb, "**Skills:** %s\n\n", plan.Skills)
	}
	if plan.UserEmail != "" {
		fmt.Fprintf(&sb, "_by %s_\n\n", plan.UserEmail)
	}
	for i, step := range plan.Steps {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, step.Topic)
		if step.Timeline != "" {
			fmt.Fprintf(&sb, "- Timeline: %s\n", step.Timeline)
		}
		if step.Resources != "" {
			fmt.Fprintf(&sb, "- Resources: %s\n", step.Resources)
		}
		if step.MediaURL != "" {
			fmt.Fprintf(&sb, "- Media: %s\n", step.MediaURL)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
