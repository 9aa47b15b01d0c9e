// Package main provides the tablegrid command: edit merged cells of an HTML
// table from the shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
