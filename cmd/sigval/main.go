package main

import (
	"os"

	"sigval/cmd/sigval/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
