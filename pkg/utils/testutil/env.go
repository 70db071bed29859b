package testutil

import (
	"os"
	"testing"
)

// GetEnvOrSkip is for integration tests against real GitHub, BigQuery, Firestore and Postgres.
// The test is skipped when key is unset.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		t.Skipf("%s is not set", key)
	}
	return v
}
