package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/adapters/browser"
)

var openZoom int

var openCmd = &cobra.Command{
	Use:   "open <pin-id>",
	Short: "Show a pin on a web map",
	Long: `Open a pin's location in the system browser. FABMAP_MAP_URL
selects the map site (OpenStreetMap by default).

Examples:
  fabmap-cli open 3f2a...
  fabmap-cli open 3f2a... --zoom 18 --print`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, err := findPin(context.Background(), args[0])
		if err != nil {
			return err
		}
		opener, err := browser.NewOpener(cfg.MapURL)
		if err != nil {
			return err
		}

		if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
			link, err := opener.BuildURL(pin.Position(), openZoom)
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		}
		return opener.Open(pin.Position(), openZoom)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().IntVarP(&openZoom, "zoom", "z", 16, "map zoom level")
	openCmd.Flags().Bool("print", false, "print the link instead of opening it")
}
