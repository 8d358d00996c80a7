package main

import (
	"fmt"
	"os"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/groctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
