// The obt command maintains Obsidian vaults from the terminal.
package main

import (
	"os"

	"github.com/crypdick/obsidian-tools/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
