// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command olanding runs the landing site and its admin console.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/olanding/internal/version"
)

// Version information (set via ldflags at build time)
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Load .env files if present (development)
	_ = godotenv.Load()

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
	if err := newRootCmd(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(info version.Info) *cobra.Command {
	serve := newServeCmd(info)

	cmd := &cobra.Command{
		Use:   "olanding",
		Short: "Landing page with an admin console",
		Long: `olanding serves a landing page assembled from editable sections (hero,
about, schools, events, team, footer), a contact form, and a password
protected admin console for managing them.

Configuration is read from OLANDING_* environment variables and an
optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(newPasswdCmd())
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}
