package native

import "errors"

// ErrNoMemory reports that the native side could not allocate memory.
var ErrNoMemory = errors.New("native: out of memory")

// RuntimeError is a generic operational failure of the native library, for
// example an unreachable device or a failed daemon call.
type RuntimeError struct {
	Msg string
	Err error
}

func (e *RuntimeError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// InvalidArgumentError reports malformed input detected by the native
// library.
type InvalidArgumentError struct {
	Msg string
	Err error
}

func (e *InvalidArgumentError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

// Runtime wraps err as a RuntimeError.
func Runtime(err error) error {
	if err == nil {
		return nil
	}
	return &RuntimeError{Err: err}
}

// InvalidArgument returns an InvalidArgumentError with the given message.
func InvalidArgument(msg string) error {
	return &InvalidArgumentError{Msg: msg}
}

type noMemoryError struct {
	err error
}

func (e *noMemoryError) Error() string { return e.err.Error() }

func (e *noMemoryError) Unwrap() error { return e.err }

func (e *noMemoryError) Is(target error) bool { return target == ErrNoMemory }

// NoMemory wraps err so that it matches ErrNoMemory while keeping the
// message of err.
func NoMemory(err error) error {
	if err == nil {
		return nil
	}
	return &noMemoryError{err: err}
}
