package main

import (
	"os"

	"exiteval/cmd/exiteval/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
