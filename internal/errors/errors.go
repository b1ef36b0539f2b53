// Package errors provides typed errors for VideoVault operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrCancelledSelection) to check for specific errors.
var (
	// Selection and submission
	ErrCancelledSelection = errors.New("selection cancelled")
	ErrSessionActive      = errors.New("a job is already running for this page")
	ErrAssistBusy         = errors.New("assistant task already running")

	// Request validation
	ErrNoPayload    = errors.New("no payload files selected")
	ErrNoCarrier    = errors.New("no carrier video selected")
	ErrNoOutput     = errors.New("no output target selected")
	ErrNoMethod     = errors.New("no method selected")
	ErrUnknownMode  = errors.New("unknown mode")
	ErrUnknownTask  = errors.New("unknown assistant task")
	ErrEmptyResult  = errors.New("engine returned an empty result")
	ErrEngineResult = errors.New("engine reported an error")
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Optional sentinel for errors.Is
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: sentinel}
}

// LaunchError means the engine executable could not be started at all.
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("launch %s: %v", e.Executable, e.Err)
	}
	return fmt.Sprintf("launch %s failed", e.Executable)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// NewLaunchError creates a new LaunchError.
func NewLaunchError(executable string, err error) *LaunchError {
	return &LaunchError{Executable: executable, Err: err}
}

// ExitError is a non-zero engine exit. Stderr holds whatever the engine
// wrote to its error stream, when it was captured.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("engine exited with code %d", e.Code)
}

// NewExitError creates a new ExitError.
func NewExitError(code int, stderr string) *ExitError {
	return &ExitError{Code: code, Stderr: stderr}
}

// BufferedTaskError wraps any failure of an assistant (AI) request.
type BufferedTaskError struct {
	Task string
	Err  error
}

func (e *BufferedTaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Task, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Task)
}

func (e *BufferedTaskError) Unwrap() error {
	return e.Err
}

// NewBufferedTaskError creates a new BufferedTaskError.
func NewBufferedTaskError(task string, err error) *BufferedTaskError {
	return &BufferedTaskError{Task: task, Err: err}
}

// Is checks if target matches any of our sentinel errors.
// This is a convenience function for common error checks.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCancelled checks if the error is a cancelled file or folder selection.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelledSelection)
}

// IsValidation checks if the error is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ExitCode extracts the engine exit code from err.
// Returns 0 for nil and -1 for errors that carry no exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
