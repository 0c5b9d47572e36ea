package main

import (
	"os"

	"github.com/sofmeright/uxlint/src/cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
