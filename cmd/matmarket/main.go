package main

import (
	"os"

	"matmarket/cmd/matmarket/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
