package main

import (
	"os"

	"github.com/errwatch/errwatch-go/cmd/errwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
