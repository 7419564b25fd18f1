package main

import (
	"os"

	"estates/server/cmd/estates/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
