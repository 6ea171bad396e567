package main

import (
	"os"

	"github.com/fintrace-dev/fintrace/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
