package main

import (
	"os"

	"github.com/moolen/logtriage/cmd/logtriage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
