// errbell - one bell for every error
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/errbell

package main

import (
	"os"

	"github.com/ariel-frischer/errbell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
