package main

import (
	"fmt"
	"os"

	"github.com/evilvant/ai-terraform-atlantis/internal/cli"
)

func main() {
	root := cli.NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorLine(err))
		os.Exit(cli.ExitCode(err))
	}
}
