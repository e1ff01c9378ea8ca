package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/sober/internal/keyring"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/streak"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when the error is one users can act on.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n       " + hint
	}
	return msg
}

// Hint returns a suggested next step for well-known failures.
func Hint(err error) string {
	switch {
	case errors.Is(err, streak.ErrInvalidPayload):
		return "Invalid data format. Please try again with a file created by 'sober export'."
	case errors.Is(err, streak.ErrCorruptState):
		return "Restore a backup with 'sober backup restore' or start over with 'sober reset'."
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		return "Set SOBER_DB_PASSWORD or use a .pgpass file instead of the OS keyring."
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
