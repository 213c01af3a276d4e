// Package main provides the entry point for the storefront admin client.
package main

import (
	"os"

	"github.com/storefront/storefront-admin/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
