package main

// Main entry point of the application
// Runs the root command and exits with its status code

import (
	"os"

	"chart-render/cmd/commands"
)

func main() {
	os.Exit(commands.Execute())
}
