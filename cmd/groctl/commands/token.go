package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tokenSecret string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Trade the server secret for a bearer token",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(
		&tokenSecret, "secret", os.Getenv("GRO_SECRET"),
		"content of the server's secret file ($GRO_SECRET)",
	)
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenSecret == "" {
		return fmt.Errorf("--secret is required")
	}
	issued, err := newClient().IssueToken(context.Background(), tokenSecret)
	if err != nil {
		return err
	}
	fmt.Println(issued)
	return nil
}
