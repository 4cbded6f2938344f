package main

import (
	"os"

	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/cmd"
)

func main() {
	if err := cli.Execute(cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
