package main

import (
	"os"

	"github.com/abhisek/studypal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
