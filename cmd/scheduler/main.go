// Package main is the entry point for the scry scheduler CLI, which applies
// SM-2 review grades to a deck of flashcards once per day.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/scry-scheduler/cmd/scheduler/commands"
)

// Version information, set with -ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
