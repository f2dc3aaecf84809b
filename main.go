// Package main is the entry point for the trendpost CLI
package main

import (
	"os"

	"github.com/jasidev/trendpost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
