// Package main is the entry point for the JotPress CLI. The actual
// commands live in the commands package.
package main

import "jotpress/cmd/jotpress/commands"

func main() {
	commands.Execute()
}
