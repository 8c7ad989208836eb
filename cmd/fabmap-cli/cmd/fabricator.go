package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fabmap/internal/application/commands"
)

var (
	fabName    string
	fabAddress string
	fabPhone   string
)

var addFabricatorCmd = &cobra.Command{
	Use:   "add-fabricator <pin-id>",
	Short: "Attach a fabricator contact to a pin",
	Long: `Attach a fabricator contact to a pin. Name and address are required.

Examples:
  fabmap-cli add-fabricator 3f2a... --name "Acme Metal" --address "12 Temple Rd, Kandy"
  fabmap-cli add-fabricator 3f2a... -n "Acme" -a "Kandy" -p "+94 81 222 3333"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addCmd := commands.NewAddFabricatorCommand(GetRepo(), args[0], fabName, fabAddress, fabPhone)
		result, err := addCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addFabricatorCmd)
	addFabricatorCmd.Flags().StringVarP(&fabName, "name", "n", "", "company name")
	addFabricatorCmd.Flags().StringVarP(&fabAddress, "address", "a", "", "postal address")
	addFabricatorCmd.Flags().StringVarP(&fabPhone, "phone", "p", "", "phone number")
}
