package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fabmap/internal/application"
	"fabmap/internal/application/commands"
	"fabmap/internal/bootstrap"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Geocode a place name",
	Long: `Look up places matching free text and print their coordinates.

Examples:
  fabmap-cli search "Kandy"
  fabmap-cli search "Galle Fort, Sri Lanka"`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		geocoder, closeGeocoder := bootstrap.Geocoder(cfg, log)
		defer closeGeocoder()

		query := strings.Join(args, " ")
		places, err := commands.NewSearchLocationCommand(geocoder, query).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(places) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, p := range places {
			fmt.Printf("%s  %s\n", p.Position, p.Label)
		}
		return nil
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <lat> <lng>",
	Short: "List pins near a coordinate",
	Long: `List pins within 5 km of a coordinate, nearest first.

Examples:
  fabmap-cli nearby 7.2906 80.6337`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lng, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}
		if err := application.ValidateCoordinate(lat, lng); err != nil {
			return err
		}

		pins, err := commands.NewListPinsCommand(GetRepo()).Execute(context.Background())
		if err != nil {
			return err
		}
		near := application.NearbyPins(pins, application.Coordinate{Lat: lat, Lng: lng})
		if len(near) == 0 {
			fmt.Println("No pins nearby.")
			return nil
		}
		for _, p := range near {
			printPin(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(nearbyCmd)
}
