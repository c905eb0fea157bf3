// Package native describes the native Bluetooth library that the tinyb
// wrappers forward to. Implementations own all real device management; the
// wrappers only translate arguments, results and failures.
//
// Every object returned by a Library is owned by the caller and must be
// released with Close exactly once. Clone returns a new object referring to
// the same daemon object with an independent lifetime.
package native

// Object is implemented by every native object.
type Object interface {
	// Path returns the daemon object path, such as
	// /org/bluez/hci0/dev_11_22_33_44_55_66.
	Path() string

	// Close releases the native resources held by the object.
	Close() error
}

// Library is the entry point into the native Bluetooth stack.
type Library interface {
	Adapters() ([]Adapter, error)
	DefaultAdapter() (Adapter, error)
	Devices() ([]Device, error)
	Close() error
}

// Adapter is a local Bluetooth controller.
type Adapter interface {
	Object
	Clone() (Adapter, error)

	Address() (string, error)
	Name() (string, error)
	Alias() (string, error)
	SetAlias(alias string) error
	Powered() (bool, error)
	SetPowered(powered bool) error
	Discovering() (bool, error)
	StartDiscovery() (bool, error)
	StopDiscovery() (bool, error)
	Devices() ([]Device, error)
}

// Device is a remote Bluetooth peripheral known to an adapter.
type Device interface {
	Object
	Clone() (Device, error)

	Connect() (bool, error)
	Disconnect() (bool, error)
	ConnectProfile(uuid string) (bool, error)
	DisconnectProfile(uuid string) (bool, error)
	Pair() (bool, error)
	CancelPairing() (bool, error)

	Address() (string, error)
	Name() (string, error)
	Alias() (string, error)
	SetAlias(alias string) error
	Class() (uint32, error)
	Appearance() (uint16, error)
	// Icon reports ok == false when the daemon has no icon for the device.
	Icon() (icon string, ok bool, err error)
	Paired() (bool, error)
	Trusted() (bool, error)
	SetTrusted(trusted bool) error
	Blocked() (bool, error)
	SetBlocked(blocked bool) error
	LegacyPairing() (bool, error)
	RSSI() (int16, error)
	Connected() (bool, error)
	UUIDs() ([]string, error)
	// Modalias reports ok == false when the daemon has no modalias for the
	// device.
	Modalias() (modalias string, ok bool, err error)

	// Adapter returns a new object for the adapter that owns the device.
	Adapter() (Adapter, error)
	// Services returns new objects for every GATT service of the device.
	Services() ([]GattService, error)
}

// GattService is a GATT service exposed by a connected device.
type GattService interface {
	Object
	Clone() (GattService, error)

	UUID() (string, error)
	Primary() (bool, error)
	Device() (Device, error)
	Characteristics() ([]GattCharacteristic, error)
}

// GattCharacteristic is a characteristic of a GATT service.
type GattCharacteristic interface {
	Object
	Clone() (GattCharacteristic, error)

	UUID() (string, error)
	Flags() ([]string, error)
	ReadValue() ([]byte, error)
	WriteValue(value []byte) error
}
