// Package testing starts the containers used by the store integration tests.
package testing

import (
	"os"
	"testing"
)

// SkipIfShort skips container-backed tests under -short or when
// SKIP_INTEGRATION is set.
func SkipIfShort(tb testing.TB, what string) {
	tb.Helper()
	if testing.Short() {
		tb.Skipf("skipping %s integration test in short mode", what)
	}
	if os.Getenv("SKIP_INTEGRATION") != "" {
		tb.Skipf("skipping %s integration test, SKIP_INTEGRATION is set", what)
	}
}

func imageOr(envKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}
