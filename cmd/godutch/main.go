package main

import (
	"os"

	"github.com/mmynk/godutch/cmd/godutch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
