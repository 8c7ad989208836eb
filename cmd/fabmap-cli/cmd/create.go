package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fabmap/internal/application/commands"
)

var createYes bool

var createCmd = &cobra.Command{
	Use:   "create <lat> <lng>",
	Short: "Place a new pin",
	Long: `Place a pin titled "New Pin" at a coordinate.

Placing a pin must be confirmed with --yes.

Examples:
  fabmap-cli create 7.2906 80.6337 --yes
  fabmap-cli create -- -33.8688 151.2093 --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lng, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}

		createCmd := commands.NewCreatePinCommand(GetRepo(), sess, lat, lng, createYes)
		result, err := createCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Println(result.Pin.ID)
		return nil
	},
}

func parseLatLng(latArg, lngArg string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latArg)
	}
	lng, err := strconv.ParseFloat(lngArg, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lngArg)
	}
	return lat, lng, nil
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "confirm the placement")
}
