// Command tagctl is a CLI front end over the constrained tagging engine,
// exercising every operation spec.md §6 names against a SQLite-backed
// database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
		os.Exit(1)
	}
}
