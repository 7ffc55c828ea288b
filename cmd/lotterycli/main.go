// Package main provides the entry point for the lottery CLI.
package main

import (
	"github.com/bkastner/lottery-cli-go/internal/cli"
)

func main() {
	cli.Execute()
}
