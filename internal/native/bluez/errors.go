// Package bluez implements the native library on top of the BlueZ D-Bus API.
//
// Some documentation for the BlueZ D-Bus interface:
// https://git.kernel.org/pub/scm/bluetooth/bluez.git/tree/doc
package bluez

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"

	"tinygo.org/x/tinyb/internal/native"
)

// D-Bus error names with special meaning.
const (
	errNoMemory         = "org.freedesktop.DBus.Error.NoMemory"
	errInvalidArgs      = "org.freedesktop.DBus.Error.InvalidArgs"
	errInvalidArguments = "org.bluez.Error.InvalidArguments"
	errAlreadyConnected = "org.bluez.Error.AlreadyConnected"
	errNotConnected     = "org.bluez.Error.NotConnected"
	errAlreadyExists    = "org.bluez.Error.AlreadyExists"
	errDoesNotExist     = "org.bluez.Error.DoesNotExist"
	errInProgress       = "org.bluez.Error.InProgress"
	errFailed           = "org.bluez.Error.Failed"
)

// errorName returns the D-Bus error name carried by err, if any.
func errorName(err error) (string, bool) {
	var value dbus.Error
	if errors.As(err, &value) {
		return value.Name, true
	}
	var ptr *dbus.Error
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Name, true
	}
	return "", false
}

func isError(err error, name string) bool {
	n, ok := errorName(err)
	return ok && n == name
}

// isNoSuchProperty reports whether err is the reply BlueZ sends when a
// property is not set on an object.
func isNoSuchProperty(err error) bool {
	return isError(err, errInvalidArgs) && strings.Contains(err.Error(), "No such property")
}

// mapError wraps a failed D-Bus call on method into the native failure
// categories. Errors that do not come from D-Bus are only wrapped.
func mapError(method string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, method)
	name, ok := errorName(err)
	switch {
	case !ok:
		return wrapped
	case name == errNoMemory:
		return native.NoMemory(wrapped)
	case name == errInvalidArgs, name == errInvalidArguments:
		return &native.InvalidArgumentError{Err: wrapped}
	case strings.HasPrefix(name, "org.bluez.Error."),
		strings.HasPrefix(name, "org.freedesktop.DBus.Error."):
		return native.Runtime(wrapped)
	default:
		return wrapped
	}
}

// result converts the reply of a method that reports whether it took
// effect. The D-Bus error named benign is not a failure: it reports
// benignOK instead. An empty benign name accepts no error.
func result(method string, err error, benign string, benignOK bool) (bool, error) {
	if err == nil {
		return true, nil
	}
	if benign != "" && isError(err, benign) {
		return benignOK, nil
	}
	return false, mapError(method, err)
}

// isNoDiscovery reports whether err is the reply to StopDiscovery on an
// adapter that is not discovering.
func isNoDiscovery(err error) bool {
	return isError(err, errFailed) && strings.Contains(err.Error(), "No discovery started")
}

// optionalString decodes a string property that BlueZ leaves out when it
// has no value. An empty string that is set is still a value.
func optionalString(method string, v dbus.Variant, err error) (string, bool, error) {
	if isNoSuchProperty(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, mapError(method, err)
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", false, nil
	}
	return s, true, nil
}
