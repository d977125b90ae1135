package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillsport/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := prompt("Email: ")
		if err != nil {
			return err
		}
		password, err := prompt("Password: ")
		if err != nil {
			return err
		}

		resp, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		sess.Token = resp.Token
		sess.UserID = resp.UserID
		sess.UserName = resp.UserName()
		path, err := session.DefaultPath()
		if err != nil {
			return err
		}
		if err := session.Save(path, sess); err != nil {
			return err
		}

		log.Info("logged in", zap.String("user", sess.UserName))
		fmt.Println(resp.Message)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := session.DefaultPath()
		if err != nil {
			return err
		}
		if err := session.Clear(path); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a SkillSport account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := prompt("Username: ")
		if err != nil {
			return err
		}
		email, err := prompt("Email: ")
		if err != nil {
			return err
		}
		password, err := prompt("Password: ")
		if err != nil {
			return err
		}

		if err := client.Register(cmd.Context(), username, email, password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Println("Account created. Log in with: skillsport login")
		return nil
	},
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
