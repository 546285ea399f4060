// Command decortour runs the decorator tour scenarios.
package main

import (
	"os"

	"github.com/charmingruby/decor/cmd/decortour/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
