//go:build linux

package bluez

import (
	"github.com/muka/go-bluetooth/bluez/profile/device"

	"tinygo.org/x/tinyb/internal/native"
)

// Device wraps an org.bluez.Device1 object. Properties are read from the
// daemon on every call, never from the cached Properties struct.
type Device struct {
	lib    *Library
	device *device.Device1
}

func (d *Device) Path() string {
	return string(d.device.Path())
}

func (d *Device) Close() error {
	d.device.Close()
	return nil
}

func (d *Device) Clone() (native.Device, error) {
	return d.lib.device(d.device.Path())
}

func (d *Device) Connect() (bool, error) {
	return result("Device1.Connect", d.device.Connect(), errAlreadyConnected, true)
}

func (d *Device) Disconnect() (bool, error) {
	return result("Device1.Disconnect", d.device.Disconnect(), errNotConnected, false)
}

func (d *Device) ConnectProfile(uuid string) (bool, error) {
	return result("Device1.ConnectProfile", d.device.ConnectProfile(uuid), errAlreadyConnected, true)
}

func (d *Device) DisconnectProfile(uuid string) (bool, error) {
	return result("Device1.DisconnectProfile", d.device.DisconnectProfile(uuid), errNotConnected, false)
}

func (d *Device) Pair() (bool, error) {
	return result("Device1.Pair", d.device.Pair(), errAlreadyExists, true)
}

// CancelPairing reports false when no pairing is in progress.
func (d *Device) CancelPairing() (bool, error) {
	return result("Device1.CancelPairing", d.device.CancelPairing(), errDoesNotExist, false)
}

func (d *Device) Address() (string, error) {
	v, err := d.device.GetAddress()
	return v, mapError("Device1.Address", err)
}

func (d *Device) Name() (string, error) {
	v, err := d.device.GetName()
	return v, mapError("Device1.Name", err)
}

func (d *Device) Alias() (string, error) {
	v, err := d.device.GetAlias()
	return v, mapError("Device1.Alias", err)
}

func (d *Device) SetAlias(alias string) error {
	return mapError("Device1.Alias", d.device.SetAlias(alias))
}

func (d *Device) Class() (uint32, error) {
	v, err := d.device.GetClass()
	return v, mapError("Device1.Class", err)
}

func (d *Device) Appearance() (uint16, error) {
	v, err := d.device.GetAppearance()
	return v, mapError("Device1.Appearance", err)
}

func (d *Device) Icon() (string, bool, error) {
	v, err := d.device.GetProperty("Icon")
	return optionalString("Device1.Icon", v, err)
}

func (d *Device) Paired() (bool, error) {
	v, err := d.device.GetPaired()
	return v, mapError("Device1.Paired", err)
}

func (d *Device) Trusted() (bool, error) {
	v, err := d.device.GetTrusted()
	return v, mapError("Device1.Trusted", err)
}

func (d *Device) SetTrusted(trusted bool) error {
	return mapError("Device1.Trusted", d.device.SetTrusted(trusted))
}

func (d *Device) Blocked() (bool, error) {
	v, err := d.device.GetBlocked()
	return v, mapError("Device1.Blocked", err)
}

func (d *Device) SetBlocked(blocked bool) error {
	return mapError("Device1.Blocked", d.device.SetBlocked(blocked))
}

func (d *Device) LegacyPairing() (bool, error) {
	v, err := d.device.GetLegacyPairing()
	return v, mapError("Device1.LegacyPairing", err)
}

func (d *Device) RSSI() (int16, error) {
	v, err := d.device.GetRSSI()
	return v, mapError("Device1.RSSI", err)
}

func (d *Device) Connected() (bool, error) {
	v, err := d.device.GetConnected()
	return v, mapError("Device1.Connected", err)
}

func (d *Device) UUIDs() ([]string, error) {
	v, err := d.device.GetUUIDs()
	if err != nil {
		return nil, mapError("Device1.UUIDs", err)
	}
	return append([]string(nil), v...), nil
}

func (d *Device) Modalias() (string, bool, error) {
	v, err := d.device.GetProperty("Modalias")
	return optionalString("Device1.Modalias", v, err)
}

func (d *Device) Adapter() (native.Adapter, error) {
	path, err := d.device.GetAdapter()
	if err != nil {
		return nil, mapError("Device1.Adapter", err)
	}
	return d.lib.adapter(path)
}

func (d *Device) Services() ([]native.GattService, error) {
	paths, err := d.lib.paths(serviceInterface, d.device.Path())
	if err != nil {
		return nil, err
	}
	list := make([]native.GattService, 0, len(paths))
	for _, p := range paths {
		s, err := d.lib.service(p)
		if err != nil {
			closeAll(list)
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}
