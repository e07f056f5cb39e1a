// Package main provides the entry point for the passfold CLI tool.
package main

import (
	"github.com/passfold/passfold/cmd/passfold/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
