package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			return fmt.Errorf("both --email and --password are required")
		}
		if err := current.session.Login(cmd.Context(), loginEmail, loginPassword); err != nil {
			return err
		}
		u := current.session.User()
		fmt.Printf("logged in as %s (%s)\n", u.Email, u.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		current.session.Logout()
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !current.session.LoggedIn() {
			fmt.Println("not logged in")
			return nil
		}
		u, err := current.session.Profile(cmd.Context())
		if err != nil {
			// Fall back to the persisted profile when the API is unreachable.
			u = current.session.User()
		}
		fmt.Printf("%s (%s)\n", u.Email, u.Role)
		if u.Name != "" {
			fmt.Printf("name: %s\n", u.Name)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
