// Package testutil provides deterministic signals and comparison helpers
// shared by the voice test suites.
package testutil
