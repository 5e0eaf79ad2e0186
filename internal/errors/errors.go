// Package errors provides standardized error handling for sxredder.
// It defines the error kinds raised while browsing and shredding, typed errors
// carrying the path or parameter involved, and helpers for consistent
// creation, wrapping and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Browsing error kinds
	DirectoryRead
	PreviewUnavailable
	InvalidOperation
	// Shredding error kinds
	EraseFailed
	UnlinkFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// String returns a short, log friendly name for the kind
func (k ErrorKind) String() string {
	switch k {
	case DirectoryRead:
		return "directory_read"
	case PreviewUnavailable:
		return "preview_unavailable"
	case InvalidOperation:
		return "invalid_operation"
	case EraseFailed:
		return "erase_failed"
	case UnlinkFailed:
		return "unlink_failed"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrNotADirectory = NewFileError("not a directory", "", InvalidOperation, nil)
	ErrNotAFile      = NewFileError("not a regular file", "", InvalidOperation, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file and directory operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// Is matches another *FileError of the same kind and message, so the
// ErrNotADirectory style sentinels work with errors.Is regardless of path.
func (e *FileError) Is(target error) bool {
	t, ok := target.(*FileError)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.msg == e.msg && (t.path == "" || t.path == e.path)
}

// EraseError is returned by the shred engine. Pass is the overwrite pass that
// failed (0 when the file could not be opened or measured) and Written the
// bytes already written in that pass.
type EraseError struct {
	FileError
	pass    int
	written int64
}

// NewEraseError creates an error for a failed open or overwrite
func NewEraseError(path string, pass int, written int64, err error) *EraseError {
	msg := "erase failed"
	if pass > 0 {
		msg = fmt.Sprintf("erase failed during pass %d", pass)
	}
	return &EraseError{
		FileError: *NewFileError(msg, path, EraseFailed, err),
		pass:      pass,
		written:   written,
	}
}

// NewUnlinkError creates an error for a file whose contents were overwritten
// but whose name could not be removed
func NewUnlinkError(path string, err error) *EraseError {
	return &EraseError{
		FileError: *NewFileError("overwritten but not removed", path, UnlinkFailed, err),
		pass:      2,
	}
}

// Pass returns the overwrite pass the error occurred in
func (e *EraseError) Pass() int {
	return e.pass
}

// Written returns the bytes written in the failing pass before the error
func (e *EraseError) Written() int64 {
	return e.written
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsDirectoryRead checks if the error is a directory read error
func IsDirectoryRead(err error) bool {
	return KindOf(err) == DirectoryRead
}

// IsPreviewUnavailable checks if the error is a preview error
func IsPreviewUnavailable(err error) bool {
	return KindOf(err) == PreviewUnavailable
}

// IsInvalidOperation checks if the error rejects an operation on the wrong
// kind of entry
func IsInvalidOperation(err error) bool {
	return KindOf(err) == InvalidOperation
}

// IsEraseFailed checks if the error is an open/overwrite failure
func IsEraseFailed(err error) bool {
	return KindOf(err) == EraseFailed
}

// IsUnlinkFailed checks if the error is a removal failure after a complete
// overwrite
func IsUnlinkFailed(err error) bool {
	return KindOf(err) == UnlinkFailed
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
