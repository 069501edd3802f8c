// Package main is the entry point for the handbook service.
package main

import (
	"os"

	"github.com/hoppa1231/Handbook/cmd/handbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
