package main

import (
	"github.com/softpare/weblint/cmd"
)

// main is the entry point for the weblint CLI.
func main() {
	cmd.Execute()
}
