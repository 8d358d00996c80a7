package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call METHOD PATH [BODY]",
	Short: "Send a raw API request",
	Long: `Send a raw request to the server and print the response body.

The path is relative to the server, e.g. "/api/tray/". Pass the JSON
body as the third argument, or "-" to read it from stdin.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	method := strings.ToUpper(args[0])
	path := args[1]

	var body io.Reader
	if len(args) == 3 {
		if args[2] == "-" {
			body = os.Stdin
		} else {
			body = strings.NewReader(args[2])
		}
	}

	resp, err := newClient().Do(context.Background(), method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(payload) != 0 {
		fmt.Println(strings.TrimSuffix(string(payload), "\n"))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s", resp.Status)
	}
	return nil
}
