package main

import (
	"os"

	"github.com/charle01ch/gerador-5-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
