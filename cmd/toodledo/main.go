package main

import (
	"os"

	"github.com/wsargent/toodledo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
