package testutil_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Run("value of set variable", func(t *testing.T) {
		t.Setenv("PYTIMING_TEST_ENV", "blue")
		gt.V(t, testutil.GetEnvOrSkip(t, "PYTIMING_TEST_ENV")).Equal("blue")
	})

	t.Run("empty variable skips", func(t *testing.T) {
		t.Setenv("PYTIMING_TEST_ENV", "")

		var reached bool
		t.Run("inner", func(t *testing.T) {
			testutil.GetEnvOrSkip(t, "PYTIMING_TEST_ENV")
			reached = true
		})
		gt.False(t, reached)
	})
}
