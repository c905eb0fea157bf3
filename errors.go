package tinyb

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"tinygo.org/x/tinyb/internal/handle"
	"tinygo.org/x/tinyb/internal/native"
)

// Kind classifies a failure reported by the native library.
type Kind int

const (
	// KindGeneric is any native failure that fits none of the other kinds.
	KindGeneric Kind = iota
	// KindOutOfMemory reports native memory exhaustion.
	KindOutOfMemory
	// KindRuntime reports a native operational failure, such as an
	// unreachable device or a failed daemon call.
	KindRuntime
	// KindInvalidArgument reports malformed input or use of a deleted
	// object.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindOutOfMemory:
		return "out of memory"
	case KindRuntime:
		return "runtime"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "generic"
	}
}

// kindError is the sentinel type matched by Error.Is.
type kindError Kind

func (k kindError) Error() string {
	return "tinyb: " + Kind(k).String() + " error"
}

// Sentinels for use with errors.Is. Every error returned by this package
// matches exactly one of them, and KindOf reports the same kind.
var (
	ErrGeneric         error = kindError(KindGeneric)
	ErrOutOfMemory     error = kindError(KindOutOfMemory)
	ErrRuntime         error = kindError(KindRuntime)
	ErrInvalidArgument error = kindError(KindInvalidArgument)
)

// ErrNotSupported is returned by Open on platforms without a native library.
var ErrNotSupported = &Error{Op: "open", Kind: KindRuntime, Err: errors.New("no Bluetooth daemon support on this platform")}

// Error is a classified native failure.
type Error struct {
	// Op is the operation that failed, such as "connect" or "set-alias".
	Op   string
	Kind Kind
	// Err is the native failure. Its message is the message of the error.
	Err error
}

func (e *Error) Error() string {
	return "tinyb: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindError)
	return ok && Kind(k) == e.Kind
}

// KindOf returns the kind of err. Errors not produced by this package are
// KindGeneric.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// classify maps a native failure onto a Kind. The checks run from the most
// specific category to the least specific one.
func classify(err error) Kind {
	var (
		runtimeErr *native.RuntimeError
		argErr     *native.InvalidArgumentError
	)
	switch {
	case errors.Is(err, native.ErrNoMemory):
		return KindOutOfMemory
	case errors.As(err, &runtimeErr):
		return KindRuntime
	case errors.As(err, &argErr),
		errors.Is(err, handle.ErrInvalid),
		errors.Is(err, handle.ErrReleased):
		return KindInvalidArgument
	default:
		return KindGeneric
	}
}

// translate converts a native failure of op on the object h into an *Error
// and logs it. A nil err stays nil.
func translate(op string, h handle.Handle, err error) error {
	if err == nil {
		return nil
	}
	e := &Error{Op: op, Kind: classify(err), Err: err}
	logger().WithFields(logrus.Fields{
		"op":     op,
		"kind":   e.Kind.String(),
		"handle": uint64(h),
	}).Debug(err.Error())
	return e
}

// interrupted reports that op gave up waiting because ctx is done. The error
// wraps ctx.Err(), so errors.Is(err, context.DeadlineExceeded) holds.
func interrupted(ctx context.Context, op string, h handle.Handle) error {
	return translate(op, h, native.Runtime(ctx.Err()))
}
