package main

import (
	"os"

	"github.com/hireloop/talent-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
