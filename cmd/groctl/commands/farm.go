package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var farmCmd = &cobra.Command{
	Use:   "farm",
	Short: "Inspect the farm of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var farmShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the farm record",
	RunE:  runFarmShow,
}

func init() {
	farmCmd.AddCommand(farmShowCmd)
	rootCmd.AddCommand(farmCmd)
}

func runFarmShow(cmd *cobra.Command, args []string) error {
	farm, err := newClient().Farm(context.Background())
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(farm, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
