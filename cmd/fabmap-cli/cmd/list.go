package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/application"
	"fabmap/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pins, newest first",
	Long: `List every pin with its coordinates, title and fabricators.

Examples:
  fabmap-cli list
  fabmap-cli list --backend postgres`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := commands.NewListPinsCommand(GetRepo()).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(pins) == 0 {
			fmt.Println("No pins.")
			return nil
		}
		for _, p := range pins {
			printPin(p)
		}
		return nil
	},
}

func printPin(p application.Pin) {
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s  %s  %s\n", p.ID, p.Position(), title)
	if p.Description != "" {
		fmt.Printf("    %s\n", p.Description)
	}
	for _, f := range p.Fabricators {
		line := f.Name + ", " + f.Address
		if f.Phone != "" {
			line += ", " + f.Phone
		}
		fmt.Printf("    - %s\n", line)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
