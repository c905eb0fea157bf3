package tinyb

import "tinygo.org/x/tinyb/internal/native/bluez"

// Open connects to the BlueZ daemon on the system bus.
func Open() (*Manager, error) {
	lib, err := bluez.Open()
	if err != nil {
		return nil, translate("open", 0, err)
	}
	return newManager(lib), nil
}
