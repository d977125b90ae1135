// Package app is the terminal client's shell: it owns the page models,
// routes messages between them and the stores, and runs the bubbletea
// program.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"skillsport/cmd/skillsport/ui"
	"skillsport/internal/api"
	"skillsport/internal/session"
	"skillsport/internal/story"
)

// mode selects which page owns the screen and the keyboard.
type mode int

const (
	modeStories mode = iota
	modeViewer
	modeComposer
	modeFeed
	modePlans
	modeCommunities
	modeNotifs
)

// Model is the top-level bubbletea model.
type Model struct {
	client *api.Client
	store  *story.Store
	sess   *session.Context
	log    *zap.Logger

	mode    mode
	booting bool

	carousel    ui.CarouselModel
	viewer      ui.ViewerModel
	composer    ui.ComposerModel
	feed        ui.FeedModel
	plans       ui.PlansModel
	communities ui.CommunitiesModel
	notifsPage  ui.NotifsModel

	notifs      []api.Notification
	unread      int
	markingRead bool // a mark-all-read request is in flight

	spin   spinner.Model
	notice string
	errMsg string

	styles ui.Styles
	width  int
	height int
}

// New builds the shell for an authenticated session.
func New(client *api.Client, store *story.Store, sess *session.Context, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	styles := ui.DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:      client,
		store:       store,
		sess:        sess,
		log:         log,
		booting:     true,
		carousel:    ui.NewCarouselModel(sess.UserName, styles),
		viewer:      ui.NewViewerModel(sess.UserName, styles),
		composer:    ui.NewComposerModel(styles),
		feed:        ui.NewFeedModel(styles),
		plans:       ui.NewPlansModel(styles),
		communities: ui.NewCommunitiesModel(sess.UserName, styles),
		notifsPage:  ui.NewNotifsModel(styles),
		spin:        sp,
		styles:      styles,
	}
}

// Init fires the boot fetch and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootCmd(), m.spin.Tick)
}

// Run starts the program and blocks until exit.
func Run(client *api.Client, store *story.Store, sess *session.Context, log *zap.Logger) error {
	p := tea.NewProgram(New(client, store, sess, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
