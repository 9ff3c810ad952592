package main

import (
	"os"

	"github.com/FFengIll/psancestor/cli"
)

func main() {
	os.Exit(cli.Execute())
}
