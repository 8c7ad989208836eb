package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/application"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in as a user",
	Long: `Sign in with an email address. The user ID is derived from the email,
so signing in again with the same address finds the same pins.

Examples:
  fabmap-cli login ada@example.com`,
	Args:        cobra.ExactArgs(1),
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := sess.SignIn(args[0])
		if err != nil {
			return err
		}
		log.Info("signed_in", "user_id", rec.UserID)
		fmt.Printf("Signed in as %s (%s)\n", rec.Email, rec.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Sign out",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.SignOut(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Show the signed-in user",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := sess.Load()
		if errors.Is(err, application.ErrNoSession) {
			fmt.Println("Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s), signed in %s\n", rec.Email, rec.UserID, rec.SignedIn.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
