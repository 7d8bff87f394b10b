// Package main provides the CLI entrypoint for typegraph.
//
// typegraph analyses the type graph reachable from a set of root types
// and prints the resulting descriptors:
//   - Loads Go packages (go/packages + go/types) or a YAML type manifest
//   - Reads @property, @var, @param and @return doc tags
//   - Crawls member and parameter types, breaking cycles
//   - Prints descriptors as YAML or as colored text
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
