package main

import (
	"errors"

	"tinygo.org/x/tinyb"
)

// formatUserError turns an error into a message for the terminal. Native
// failures get a hint about their likely cause.
func formatUserError(err error) string {
	var e *tinyb.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case tinyb.KindOutOfMemory:
		return e.Error() + " (the Bluetooth daemon ran out of memory)"
	case tinyb.KindRuntime:
		if errors.Is(err, tinyb.ErrNotSupported) {
			return "Bluetooth is only supported through BlueZ on Linux"
		}
		return e.Error() + " (is bluetoothd running and the device in range?)"
	case tinyb.KindInvalidArgument:
		return e.Error() + " (invalid argument)"
	default:
		return e.Error()
	}
}
