// Package main provides the entry point for snotify-cli.
//
// snotify-cli launches programs with X11 startup notification,
// completes or retracts startup sequences, and monitors protocol
// traffic on a display.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/snotify-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
