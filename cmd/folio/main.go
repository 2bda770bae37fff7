// Command folio renders, checks and serves the Itô's Lemma article.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/folio/cmd/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
