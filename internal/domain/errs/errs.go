// Package errs holds the typed error taxonomy shared by the store, the adapters and the HTTP layer.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed input rejected before any I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// NotFoundError reports a key that resolves to nothing.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Key)
}

// UpstreamFetchError wraps a failed call to an external provider.
type UpstreamFetchError struct {
	Op  string
	Key string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("upstream %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// CacheIOError wraps a failed read or write against the persistent store.
type CacheIOError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheIOError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheIOError) Unwrap() error { return e.Err }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NotFound(key string) error {
	return &NotFoundError{Key: key}
}

// Upstream wraps err as an UpstreamFetchError unless it already carries one of the taxonomy types.
func Upstream(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if isTyped(err) {
		return err
	}
	return &UpstreamFetchError{Op: op, Key: key, Err: err}
}

// CacheIO wraps err as a CacheIOError unless it already carries one of the taxonomy types.
func CacheIO(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if isTyped(err) {
		return err
	}
	return &CacheIOError{Op: op, Key: key, Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsUpstream(err error) bool {
	var e *UpstreamFetchError
	return errors.As(err, &e)
}

func IsCacheIO(err error) bool {
	var e *CacheIOError
	return errors.As(err, &e)
}

func isTyped(err error) bool {
	return IsValidation(err) || IsNotFound(err) || IsUpstream(err) || IsCacheIO(err)
}
