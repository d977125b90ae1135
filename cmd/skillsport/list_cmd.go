package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"skillsport/internal/story"
)

// storiesCmd prints the current status list without entering the TUI,
// handy for scripting and for checking the stub backend.
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List current statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.Authenticated() {
			return fmt.Errorf("not logged in, run: skillsport login")
		}
		store := story.NewStore(client, sess, log)
		if err := store.Refresh(cmd.Context()); err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"#", "Owner", "Caption", "Expires"})
		for i, item := range store.Items() {
			expires := "-"
			if item.ExpiredAt > 0 {
				expires = time.UnixMilli(item.ExpiredAt).Format("15:04 Jan 2")
			}
			t.AppendRow(table.Row{i + 1, item.Uname, item.Description, expires})
		}
		t.Render()
		return nil
	},
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List learning plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, err := client.ListPlans(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Title", "Goal", "Skills", "Steps", "Author"})
		for _, plan := range plans {
			t.AppendRow(table.Row{plan.Title, plan.Goal, plan.Skills, len(plan.Steps), plan.UserEmail})
		}
		t.Render()
		return nil
	},
}

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "List sport communities",
	RunE: func(cmd *cobra.Command, args []string) error {
		communities, err := client.ListCommunities(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Description", "Members", "Joined"})
		for _, c := range communities {
			joined := ""
			if c.HasMember(sess.UserName) {
				joined = "yes"
			}
			t.AppendRow(table.Row{c.Name, c.Description, len(c.Members), joined})
		}
		t.Render()
		return nil
	},
}

// profileCmd shows the logged-in user's account details.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.Authenticated() {
			return fmt.Errorf("not logged in, run: skillsport login")
		}
		profile, err := client.GetProfile(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendRow(table.Row{"Username", profile.Username})
		t.AppendRow(table.Row{"Email", profile.Email})
		t.AppendRow(table.Row{"User ID", profile.ID})
		t.Render()
		return nil
	},
}

// newTable builds a writer that degrades to plain output when piped.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
		t.Style().Format.Header = text.FormatTitle
	} else {
		t.SetStyle(table.StyleDefault)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
	}
	return t
}
