package main

import (
	"context"
	"os"

	"github.com/rpggio/okrboard/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), cli.NewRootCmd(version)); err != nil {
		os.Exit(1)
	}
}
