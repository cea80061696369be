// Package main is the entry point for fleawatch.
package main

import (
	"os"

	"github.com/fleawatch/fleawatch/cmd/fleawatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
