package main

import (
	"os"

	"github.com/mtakeda/annealsched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
