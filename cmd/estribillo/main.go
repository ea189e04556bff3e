package main

import (
	"os"

	"github.com/RyanBlaney/estribillo/cli"
)

func main() {
	os.Exit(cli.Execute())
}
