package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sober/internal/keyring"
	"github.com/julianstephens/sober/internal/streak"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to connect: %w", errors.New("connection refused")),
			expected: "Error: failed to connect: connection refused",
		},
		{
			name: "import rejection carries a hint",
			err:  fmt.Errorf("%w: unsupported version", streak.ErrInvalidPayload),
			expected: "Error: invalid data format: unsupported version\n" +
				"       Invalid data format. Please try again with a file created by 'sober export'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.err))
		})
	}
}

func TestHint(t *testing.T) {
	assert.Empty(t, Hint(errors.New("plain")))
	assert.Contains(t, Hint(fmt.Errorf("loading: %w", streak.ErrCorruptState)), "sober backup restore")
	assert.Contains(t, Hint(fmt.Errorf("%w: dbus", keyring.ErrKeyringUnavailable)), "SOBER_DB_PASSWORD")
}

// TestFatal runs Fatal in a subprocess and checks the exit code and output.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "Fatal() did not exit with an error")
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "Error: test error")
}

// TestFatal_NilError checks that Fatal returns normally for a nil error.
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	assert.NoError(t, cmd.Run(), "Fatal(nil) should not exit")
}
