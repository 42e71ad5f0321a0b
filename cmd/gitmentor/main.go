package main

import (
	"os"

	"github.com/alimgiray/gitmentor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
