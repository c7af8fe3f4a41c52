package main

import (
	"os"

	"github.com/kilianp07/schedgen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
