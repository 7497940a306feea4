// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package commands implements the jotpress CLI: `serve` runs the
// backend server, `post` submits an entry to a running server.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "jotpress",
	Short: "JotPress - a JSON-file-backed micro blogging backend",
	Long: `JotPress is a small content backend for personal note taking.

Posts live in a single JSON document together with their categories and
tags. New posts are classified automatically from their tags and content,
and hashtags written into the text become real tags.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
