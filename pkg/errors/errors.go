package errors

import "errors"

// Error codes shared across the service. Backend codes drive the retry
// policy: transient errors are retried, fatal errors abort the run.
const (
	CodeInvalidInput     = "invalid_input"
	CodeChunkingError    = "chunking_error"
	CodeBackendTransient = "backend_transient"
	CodeBackendFatal     = "backend_fatal"
	CodeExtractError     = "extract_error"
	CodeStorageError     = "storage_error"
	CodeNotFound         = "not_found"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps callers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether the error carries the transient backend code.
func IsRetryable(err error) bool {
	return IsCode(err, CodeBackendTransient)
}
