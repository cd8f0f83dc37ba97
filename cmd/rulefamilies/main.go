// Package main provides the rulefamilies binary: a command line front end for searching IP rule families,
// calculating their due dates and listing the available filter options.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr, os.LookupEnv).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
