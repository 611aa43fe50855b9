package main

import (
	"os"

	"github.com/weiweivv2222/pykeen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
