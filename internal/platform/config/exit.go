package config

import (
	"fmt"
	"os"

	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitError writes err to stderr and exits with the status code mapped
// from its domain error code, or 1 for plain errors.
func ExitError(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	if hint := apperrors.Hint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(apperrors.ExitCode(err))
}
