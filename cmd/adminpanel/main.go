package main

import (
	"os"

	"github.com/Dhoini/Admin-panel/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
