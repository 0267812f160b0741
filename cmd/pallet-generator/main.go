// Package main provides the CLI entrypoint for pallet-generator.
//
// pallet-generator is a build-time Go codegen tool that:
//   - Reads a package annotated with //pallet: directives
//   - Builds its definition model and validates it
//   - Generates the capability implementations of its pallet struct
package main

import (
	"os"

	"pallet-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
