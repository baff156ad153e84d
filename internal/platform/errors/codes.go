// Package errors provides structured error handling for the dataset commands.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidConfig reports parameters rejected before any stage runs.
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeMissingPrerequisite reports an upstream dataset that has not been
	// produced yet.
	CodeMissingPrerequisite Code = "MISSING_PREREQUISITE"

	// CodeMalformedRecord reports an input row whose key or timestamp fields
	// cannot be parsed.
	CodeMalformedRecord Code = "MALFORMED_RECORD"

	// CodeProbabilityRange reports a derived probability outside [0, 1].
	CodeProbabilityRange Code = "PROBABILITY_RANGE"
)

// ExitCode maps domain codes to process exit statuses.
func (c Code) ExitCode() int {
	switch c {
	case CodeInvalidConfig:
		return 2
	case CodeMissingPrerequisite:
		return 3
	case CodeMalformedRecord:
		return 4
	case CodeProbabilityRange:
		return 5
	default:
		return 1
	}
}
