package main

import (
	"context"
	"os"

	"github.com/yndnr/trilium-cli/internal/cli/command"
)

func main() {
	os.Exit(command.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
