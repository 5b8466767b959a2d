package main

import (
	"os"

	"github.com/jsvoboda/lexidrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
