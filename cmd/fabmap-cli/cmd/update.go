package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/application"
	"fabmap/internal/application/commands"
	"fabmap/internal/domain"
)

var (
	updateTitle       string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update <pin-id>",
	Short: "Change a pin's title or description",
	Long: `Change a pin's title and/or description.

Fields without a flag keep their current value. An empty --title is saved as is.

Examples:
  fabmap-cli update 3f2a... --title "Lathe shop"
  fabmap-cli update 3f2a... --description "Open weekdays"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pin, err := findPin(ctx, args[0])
		if err != nil {
			return err
		}

		title, desc := pin.Title, pin.Description
		if cmd.Flags().Changed("title") {
			title = updateTitle
		}
		if cmd.Flags().Changed("description") {
			desc = updateDescription
		}

		result, err := commands.NewUpdatePinCommand(GetRepo(), pin.ID, title, desc).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// findPin loads the pin list and picks id out of it
func findPin(ctx context.Context, id string) (application.Pin, error) {
	pins, err := commands.NewListPinsCommand(GetRepo()).Execute(ctx)
	if err != nil {
		return application.Pin{}, err
	}
	pin, ok := domain.FindPin(pins, id)
	if !ok {
		return application.Pin{}, fmt.Errorf("pin %s: %w", id, application.ErrNotFound)
	}
	return pin, nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
}
