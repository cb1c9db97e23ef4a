package main

import (
	"os"

	"github.com/abhisek/proofpal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
