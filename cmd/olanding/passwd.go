// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/olegiv/olanding/internal/config"
	"github.com/olegiv/olanding/internal/logging"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/store"
)

func newPasswdCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Set an admin password, creating the account if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			return runPasswd(cmd, args[0], password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (prompted if omitted)")

	return cmd
}

// promptPassword reads a password and its confirmation from the terminal.
func promptPassword(out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprint(out, "Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	_, _ = fmt.Fprintln(out)

	if string(pwBytes) != string(confirmBytes) {
		return "", errors.New("passwords do not match")
	}
	return string(pwBytes), nil
}

func runPasswd(cmd *cobra.Command, username, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, Console: os.Stderr})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := service.NewAuthService(service.Deps{Queries: store.New(db), Logger: logger})
	created, err := svc.ResetPassword(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	if created {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created admin user %q\n", username)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated password for %q\n", username)
	}
	return nil
}
