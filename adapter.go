package tinyb

import (
	"path"

	"tinygo.org/x/tinyb/internal/handle"
	"tinygo.org/x/tinyb/internal/native"
)

// Adapter is a local Bluetooth controller, such as hci0. It owns one native
// adapter object, which must be released with Delete.
type Adapter struct {
	h handle.Handle
}

func newAdapter(a native.Adapter) *Adapter {
	return &Adapter{h: register(TypeAdapter, a)}
}

// Type returns TypeAdapter.
func (a *Adapter) Type() ObjectType {
	return TypeAdapter
}

// Handle returns the opaque handle of the adapter.
func (a *Adapter) Handle() uint64 {
	return uint64(a.h)
}

// ID returns the controller name used by the kernel, such as hci0.
func (a *Adapter) ID() (string, error) {
	return call("adapter-id", a.h, func(ad native.Adapter) (string, error) {
		return path.Base(ad.Path()), nil
	})
}

// Clone returns a new Adapter for the same controller.
func (a *Adapter) Clone() (*Adapter, error) {
	c, err := call("adapter-clone", a.h, func(ad native.Adapter) (native.Adapter, error) {
		return ad.Clone()
	})
	if err != nil {
		return nil, err
	}
	return newAdapter(c), nil
}

// Delete releases the native adapter.
func (a *Adapter) Delete() error {
	return release("adapter-delete", a.h)
}

// Address returns the Bluetooth address of the controller.
func (a *Adapter) Address() (string, error) {
	return call("adapter-address", a.h, native.Adapter.Address)
}

// Name returns the system name of the controller.
func (a *Adapter) Name() (string, error) {
	return call("adapter-name", a.h, native.Adapter.Name)
}

// Alias returns the friendly name of the controller.
func (a *Adapter) Alias() (string, error) {
	return call("adapter-alias", a.h, native.Adapter.Alias)
}

// SetAlias sets the friendly name of the controller.
func (a *Adapter) SetAlias(alias string) error {
	return exec("adapter-set-alias", a.h, func(ad native.Adapter) error {
		return ad.SetAlias(alias)
	})
}

// Powered reports whether the controller is powered on.
func (a *Adapter) Powered() (bool, error) {
	return call("adapter-powered", a.h, native.Adapter.Powered)
}

// SetPowered switches the controller on or off.
func (a *Adapter) SetPowered(powered bool) error {
	return exec("adapter-set-powered", a.h, func(ad native.Adapter) error {
		return ad.SetPowered(powered)
	})
}

// Discovering reports whether a discovery session is active.
func (a *Adapter) Discovering() (bool, error) {
	return call("adapter-discovering", a.h, native.Adapter.Discovering)
}

// StartDiscovery starts looking for nearby devices.
func (a *Adapter) StartDiscovery() (bool, error) {
	return call("adapter-start-discovery", a.h, native.Adapter.StartDiscovery)
}

// StopDiscovery stops a discovery session started with StartDiscovery.
func (a *Adapter) StopDiscovery() (bool, error) {
	return call("adapter-stop-discovery", a.h, native.Adapter.StopDiscovery)
}

// Devices returns the devices known to the controller. Each device must be
// deleted separately.
func (a *Adapter) Devices() ([]*Device, error) {
	list, err := call("adapter-devices", a.h, native.Adapter.Devices)
	if err != nil {
		return nil, err
	}
	return newDevices(list), nil
}
