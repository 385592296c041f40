package main

import (
	"os"

	"github.com/grovetools/plantview/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
