package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sobande/taskrr/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session tokens locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		authClient := api.NewAuthClient(a.cfg.APIBaseURL, a.cfg.RequestTimeout)
		pair, err := authClient.Login(cmd.Context(), args[0], string(password))
		if err != nil {
			return err
		}

		a.sess.SetTokens(pair.IDToken, pair.RefreshToken)
		if err := a.kv.Put(sessionTokensKey, pair); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}

		user := a.sess.User()
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session and cached identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		a.sess.Reset()
		if err := a.kv.Delete(sessionTokensKey); err != nil {
			return err
		}
		if err := a.cache.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
