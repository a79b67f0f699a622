// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"
	"os"
)

// Exit codes per the CLI surface (spec §6).
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitBadArgs = 2
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if badArgsErr, ok := err.(*badArgsError); ok {
		_ = badArgsErr
		return ExitBadArgs
	}
	return ExitError
}

// badArgsError marks an error as a usage/argument problem (exit 2)
// rather than an uncaught run failure (exit 1).
type badArgsError struct{ msg string }

func (e *badArgsError) Error() string { return e.msg }

func badArgs(format string, args ...any) error {
	return &badArgsError{msg: fmt.Sprintf(format, args...)}
}
