package main

import (
	"os"

	"github.com/kk-code-lab/filer/internal/cli"
)

var Version = "dev"

func main() {
	cli.Version = Version
	os.Exit(cli.Execute())
}
