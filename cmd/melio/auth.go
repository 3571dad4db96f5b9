package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <school-code> <student-id>",
	Short: "Log in with a school code and student identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.auth.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		// First sync of the session pulls the journal down.
		a.diary.Activate(cmd.Context())

		fmt.Printf("Bonjour %s ! Connecté à l'école %s.\n", user.Name, user.SchoolCode)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.auth.Logout()
		fmt.Println("Session fermée.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		user := a.auth.CurrentUser()
		fmt.Printf("%s (%s), école %s\n", user.Name, user.Role, user.SchoolCode)
		return nil
	},
}
