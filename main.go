package main

import (
	"os"

	"github.com/merkle-open/nitro-frontify-deployer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
