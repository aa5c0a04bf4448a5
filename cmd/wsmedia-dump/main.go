// If you are AI: This is the entrypoint for the wsmedia-dump CLI, a
// small debug tool exercising the library against a real URL. Flag,
// config and shutdown handling live in the cmd package, which drives a
// client session loop.
package main

import (
	"os"

	"wsmedia/cmd/wsmedia-dump/cmd"
)

// main runs the CLI and exits non-zero on failure.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
