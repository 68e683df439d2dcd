// Command devserve is a static file server for local development.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd(runServer).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
