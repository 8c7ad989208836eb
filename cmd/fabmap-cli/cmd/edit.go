package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/adapters/editor"
	"fabmap/internal/application/commands"
)

var editCmd = &cobra.Command{
	Use:   "edit <pin-id>",
	Short: "Edit a pin's description in $EDITOR",
	Long: `Open a pin's description in $EDITOR and save it when the editor exits.

Examples:
  EDITOR=nvim fabmap-cli edit 3f2a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pin, err := findPin(ctx, args[0])
		if err != nil {
			return err
		}

		path, err := editor.WriteScratch(pin.Description)
		if err != nil {
			return err
		}
		if err := editor.NewOpener().OpenFile(path); err != nil {
			return fmt.Errorf("editor: %w", err)
		}
		desc, err := editor.ReadScratch(path)
		if err != nil {
			return err
		}
		if desc == pin.Description {
			fmt.Println("No changes.")
			return nil
		}

		result, err := commands.NewUpdatePinCommand(GetRepo(), pin.ID, pin.Title, desc).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
