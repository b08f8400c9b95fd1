package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorUsage    = 1   // Indicates missing arguments or a generic failure.
	ExitErrorTimeout  = 2   // Indicates the batch timed out.
	ExitErrorMismatch = 3   // Indicates sequential and parallel verdicts disagreed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates a single input could not be parsed.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ExitErrorGeneric is an alias kept for call sites that do not care about
// the usage/generic distinction.
const ExitErrorGeneric = ExitErrorUsage

// ErrNoCandidates is returned when no numbers were supplied on the command line.
var ErrNoCandidates = errors.New("no candidate numbers supplied")

// UsageError reports an invocation that cannot be processed at all. It
// carries the one-line usage string printed to standard error.
type UsageError struct {
	// Usage is the one-line usage string.
	Usage string
	// Cause is the underlying reason, usually ErrNoCandidates.
	Cause error
}

// Error returns the usage line.
func (e UsageError) Error() string { return e.Usage }

// Unwrap returns the underlying cause.
func (e UsageError) Unwrap() error { return e.Cause }

// ParseError reports a command-line argument that is not a valid 64-bit
// integer literal. It affects only that argument; the batch continues.
type ParseError struct {
	// Arg is the offending argument exactly as supplied.
	Arg string
	// Cause is the error returned by the integer parser.
	Cause error
}

// Error returns a message naming the rejected argument.
func (e ParseError) Error() string {
	return fmt.Sprintf("rejected input %q: %v", e.Arg, e.Cause)
}

// Unwrap returns the parser error.
func (e ParseError) Unwrap() error { return e.Cause }

// ConfigError represents a user configuration error, such as invalid flags,
// environment values or config file contents.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TimeoutError represents a batch that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		usageErr   UsageError
		parseErr   ParseError
		configErr  ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case errors.As(err, &usageErr):
		return ExitErrorUsage
	case errors.As(err, &parseErr):
		return ExitErrorInput
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}

// ColorProvider supplies the escape sequences used when printing errors.
// A nil ColorProvider prints without color.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// HandleError prints a human-readable description of err to out and returns
// the matching exit code. A nil error prints nothing.
func HandleError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). %v%s\n", red, err, reset)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", yellow, reset)
	case ExitErrorInput:
		fmt.Fprintf(out, "%sError: %v%s\n", yellow, err, reset)
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
	}
	return code
}
