package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/robotalks/scoreboard.go/pkg/cli/sh"

	_ "github.com/robotalks/scoreboard.go/pkg/cli/cmds/score"
)

func init() {
	sh.SetupFlags()
}

func main() {
	flag.Parse()
	sh.Main()
}
