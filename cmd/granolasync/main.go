// Command granolasync is the CLI entrypoint; all behavior lives in
// internal/cmd.
package main

import (
	"os"

	"github.com/kadegen/granolasync/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
