// Package tinyb provides access to Bluetooth adapters, remote devices and
// their GATT services through the BlueZ daemon on Linux.
//
// Every object handed out by the package owns one native object and must be
// released with Delete. A Delete on an object that was already deleted, and
// any other call on it, fails with ErrInvalidArgument. Failures reported by
// the native library are returned as *Error values whose Kind tells memory
// exhaustion, operational failures and invalid arguments apart.
package tinyb // import "tinygo.org/x/tinyb"
