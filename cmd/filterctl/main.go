// Command filterctl decodes dashboard addresses and replays filter actions
// against an in-memory history, without a running server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
