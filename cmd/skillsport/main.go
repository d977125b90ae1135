// Command skillsport is the terminal client for the SkillSport
// skill-sharing network: an autoplaying status viewer, the post feed and
// the learning-plan catalogue, against a running SkillSport backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillsport/cmd/skillsport/app"
	"skillsport/cmd/skillsport/config"
	"skillsport/internal/api"
	"skillsport/internal/logging"
	"skillsport/internal/session"
	"skillsport/internal/story"
)

var (
	flagServer  string
	flagVerbose bool

	cfg      config.Config
	log      *zap.Logger
	logClose func()
	sess     *session.Context
	client   *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "skillsport",
	Short: "SkillSport terminal client",
	Long: `skillsport opens the SkillSport terminal UI: ephemeral statuses with
an autoplaying viewer, the post feed and learning plans.

Log in first with "skillsport login".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logClose != nil {
			logClose()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.Authenticated() {
			return fmt.Errorf("not logged in, run: skillsport login")
		}
		store := story.NewStore(client, sess, log)
		return app.Run(client, store, sess, log)
	},
}

// setup loads config and session and builds the shared client. Every
// subcommand runs through here.
func setup(cmd *cobra.Command, _ []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.Server = flagServer
	}

	log, logClose, err = buildLogger()
	if err != nil {
		return err
	}

	sessPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	sess, err = session.Load(sessPath)
	if err != nil {
		return err
	}

	client = api.New(api.Config{BaseURL: cfg.Server, Timeout: cfg.Timeout}, sess, log)
	log.Debug("client ready",
		zap.String("server", cfg.Server),
		zap.Bool("authenticated", sess.Authenticated()))
	return nil
}

func buildLogger() (*zap.Logger, func(), error) {
	return logging.New(cfg.LogDir, flagVerbose || cfg.Verbose)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, storiesCmd, plansCmd, communitiesCmd, profileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
