package main

import (
	"os"

	"github.com/abritton2002/loyal-few/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
