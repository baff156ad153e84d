package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Additional context (file, line, step)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// MissingPrerequisite reports that path does not exist and names the
// command that produces it.
func MissingPrerequisite(path, step string) *Error {
	return WithMetadata(CodeMissingPrerequisite,
		fmt.Sprintf("missing prerequisite dataset %q", path),
		map[string]string{"path": path, "step": step},
	)
}

// MalformedRecord reports a row of path that failed to parse at column.
func MalformedRecord(path string, line int, column string, cause error) *Error {
	return WrapWithMetadata(CodeMalformedRecord,
		fmt.Sprintf("malformed record at %s:%d (%s)", path, line, column),
		map[string]string{"path": path, "line": fmt.Sprint(line), "column": column},
		cause,
	)
}

// GetCode returns the code of the first domain error in err's chain.
func GetCode(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return GetCode(err).ExitCode()
}

// Hint returns an actionable follow-up for err, or "" when none applies.
func Hint(err error) string {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return ""
	}
	switch domainErr.Code {
	case CodeMissingPrerequisite:
		if step := domainErr.Metadata["step"]; step != "" {
			return fmt.Sprintf("Run the %q command first to generate it.", step)
		}
	case CodeMalformedRecord:
		return "Regenerate the event log or fix the offending row; rows are never skipped."
	}
	return ""
}
