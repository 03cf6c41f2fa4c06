// Package testutil carries small helpers shared by the package tests.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// SkipUnlessEnv skips the test unless the given env var equals the
// wanted value. Used to gate tests that need a real capture library
// installed.
func SkipUnlessEnv(t *testing.T, key, want string) {
	t.Helper()
	if os.Getenv(key) != want {
		t.Skipf("skipped: set %s=%s to run", key, want)
	}
}

// IsCI reports whether running under common CI environments.
func IsCI() bool {
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
}

// DiscardLogger returns a logger that drops everything, keeping test
// output readable.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
