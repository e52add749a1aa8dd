package main

import (
	"os"

	"github.com/tryathq/backdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
