package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/groctl/client"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/buildtime"
)

var (
	serverURL string
	token     string
)

var rootCmd = &cobra.Command{
	Use:   "groctl",
	Short: "groctl - control a gro farm server",
	Long: `groctl talks to a running gro server over its REST API.

Point it at a leaf server (http://localhost:8000) or at one farm of a
root server (http://roothost:8000/farms/my-farm).`,
	Version: buildtime.VersionString(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI. Called once, from main.
func Execute() error {
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(serverURL, token)
}

func init() {
	defaultServer := os.Getenv("GRO_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8000"
	}
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", defaultServer,
		"base URL of the gro server ($GRO_SERVER)",
	)
	rootCmd.PersistentFlags().StringVar(
		&token, "token", os.Getenv("GRO_TOKEN"),
		"bearer token for servers requiring auth ($GRO_TOKEN)",
	)
}
