// Command scalec encodes contract calls and decodes contract return values
// against ink! metadata.
package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
