package main

import (
	"os"

	"github.com/diegoavarela/warren-sub012/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
