// Package main is the entry point for the revlearn CLI.
package main

import (
	"os"

	"github.com/runger/revlearn/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
