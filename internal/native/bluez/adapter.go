//go:build linux

package bluez

import (
	"github.com/muka/go-bluetooth/bluez/profile/adapter"

	"tinygo.org/x/tinyb/internal/native"
)

// Adapter wraps an org.bluez.Adapter1 object.
type Adapter struct {
	lib     *Library
	adapter *adapter.Adapter1
}

func (a *Adapter) Path() string {
	return string(a.adapter.Path())
}

func (a *Adapter) Close() error {
	a.adapter.Close()
	return nil
}

func (a *Adapter) Clone() (native.Adapter, error) {
	return a.lib.adapter(a.adapter.Path())
}

func (a *Adapter) Address() (string, error) {
	v, err := a.adapter.GetAddress()
	return v, mapError("Adapter1.Address", err)
}

func (a *Adapter) Name() (string, error) {
	v, err := a.adapter.GetName()
	return v, mapError("Adapter1.Name", err)
}

func (a *Adapter) Alias() (string, error) {
	v, err := a.adapter.GetAlias()
	return v, mapError("Adapter1.Alias", err)
}

func (a *Adapter) SetAlias(alias string) error {
	return mapError("Adapter1.Alias", a.adapter.SetAlias(alias))
}

func (a *Adapter) Powered() (bool, error) {
	v, err := a.adapter.GetPowered()
	return v, mapError("Adapter1.Powered", err)
}

func (a *Adapter) SetPowered(powered bool) error {
	return mapError("Adapter1.Powered", a.adapter.SetPowered(powered))
}

func (a *Adapter) Discovering() (bool, error) {
	v, err := a.adapter.GetDiscovering()
	return v, mapError("Adapter1.Discovering", err)
}

func (a *Adapter) StartDiscovery() (bool, error) {
	return result("Adapter1.StartDiscovery", a.adapter.StartDiscovery(), errInProgress, true)
}

func (a *Adapter) StopDiscovery() (bool, error) {
	err := a.adapter.StopDiscovery()
	if isNoDiscovery(err) {
		return false, nil
	}
	return result("Adapter1.StopDiscovery", err, "", false)
}

func (a *Adapter) Devices() ([]native.Device, error) {
	paths, err := a.lib.paths(deviceInterface, a.adapter.Path())
	if err != nil {
		return nil, err
	}
	return a.lib.devices(paths)
}
