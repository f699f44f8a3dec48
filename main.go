package main

import (
	"os"

	"github.com/DivineRock/ffxiv-coord-importer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
