package tinyb

import (
	"context"
	"strings"
	"time"

	"tinygo.org/x/tinyb/internal/handle"
	"tinygo.org/x/tinyb/internal/native"
)

// Device is a remote Bluetooth device. It owns one native device object,
// which must be released with Delete. All methods block until the native
// library returns.
//
// Methods that return a value return the zero value together with a non-nil
// *Error when the native call fails.
type Device struct {
	h handle.Handle
}

func newDevice(d native.Device) *Device {
	return &Device{h: register(TypeDevice, d)}
}

func newDevices(list []native.Device) []*Device {
	devices := make([]*Device, len(list))
	for i, d := range list {
		devices[i] = newDevice(d)
	}
	return devices
}

// Type returns TypeDevice.
func (d *Device) Type() ObjectType {
	return TypeDevice
}

// Handle returns the opaque handle of the device.
func (d *Device) Handle() uint64 {
	return uint64(d.h)
}

// Clone returns a new Device for the same remote device. The clone has its
// own lifetime and must be deleted separately.
func (d *Device) Clone() (*Device, error) {
	c, err := call("clone", d.h, func(dev native.Device) (native.Device, error) {
		return dev.Clone()
	})
	if err != nil {
		return nil, err
	}
	return newDevice(c), nil
}

// Delete releases the native device. Any further call on d, including a
// second Delete, fails with ErrInvalidArgument.
func (d *Device) Delete() error {
	return release("delete", d.h)
}

// Connect connects to the device and returns whether the connection was
// established.
func (d *Device) Connect() (bool, error) {
	return call("connect", d.h, native.Device.Connect)
}

// Disconnect disconnects from the device.
func (d *Device) Disconnect() (bool, error) {
	return call("disconnect", d.h, native.Device.Disconnect)
}

// ConnectProfile connects the profile identified by uuid.
func (d *Device) ConnectProfile(uuid string) (bool, error) {
	return call("connect-profile", d.h, func(dev native.Device) (bool, error) {
		return dev.ConnectProfile(uuid)
	})
}

// DisconnectProfile disconnects the profile identified by uuid.
func (d *Device) DisconnectProfile(uuid string) (bool, error) {
	return call("disconnect-profile", d.h, func(dev native.Device) (bool, error) {
		return dev.DisconnectProfile(uuid)
	})
}

// Pair starts pairing with the device.
func (d *Device) Pair() (bool, error) {
	return call("pair", d.h, native.Device.Pair)
}

// CancelPairing cancels a pairing operation started with Pair.
func (d *Device) CancelPairing() (bool, error) {
	return call("cancel-pairing", d.h, native.Device.CancelPairing)
}

// Address returns the Bluetooth address of the device, such as
// 11:22:33:AA:BB:CC.
func (d *Device) Address() (string, error) {
	return call("address", d.h, native.Device.Address)
}

// Name returns the remote name of the device.
func (d *Device) Name() (string, error) {
	return call("name", d.h, native.Device.Name)
}

// Alias returns the local alias of the device.
func (d *Device) Alias() (string, error) {
	return call("alias", d.h, native.Device.Alias)
}

// SetAlias sets the local alias of the device. An empty alias resets it to
// the remote name.
func (d *Device) SetAlias(alias string) error {
	return exec("set-alias", d.h, func(dev native.Device) error {
		return dev.SetAlias(alias)
	})
}

// Class returns the Bluetooth class of device code.
func (d *Device) Class() (uint32, error) {
	return call("class", d.h, native.Device.Class)
}

// Appearance returns the GAP appearance code of the device.
func (d *Device) Appearance() (uint16, error) {
	return call("appearance", d.h, native.Device.Appearance)
}

// Icon returns the freedesktop.org icon name of the device. ok is false when
// the device has no icon.
func (d *Device) Icon() (icon string, ok bool, err error) {
	n, err := call("icon", d.h, func(dev native.Device) (nullable, error) {
		return optional(dev.Icon())
	})
	return n.value, n.ok, err
}

// Paired reports whether the device is paired.
func (d *Device) Paired() (bool, error) {
	return call("paired", d.h, native.Device.Paired)
}

// Trusted reports whether the device is trusted.
func (d *Device) Trusted() (bool, error) {
	return call("trusted", d.h, native.Device.Trusted)
}

// SetTrusted marks the device as trusted or untrusted.
func (d *Device) SetTrusted(trusted bool) error {
	return exec("set-trusted", d.h, func(dev native.Device) error {
		return dev.SetTrusted(trusted)
	})
}

// Blocked reports whether incoming connections from the device are rejected.
func (d *Device) Blocked() (bool, error) {
	return call("blocked", d.h, native.Device.Blocked)
}

// SetBlocked blocks or unblocks the device.
func (d *Device) SetBlocked(blocked bool) error {
	return exec("set-blocked", d.h, func(dev native.Device) error {
		return dev.SetBlocked(blocked)
	})
}

// LegacyPairing reports whether the device only supports pre-2.1 pairing.
func (d *Device) LegacyPairing() (bool, error) {
	return call("legacy-pairing", d.h, native.Device.LegacyPairing)
}

// RSSI returns the signal strength of the last inquiry or advertisement, in
// dBm.
func (d *Device) RSSI() (int16, error) {
	return call("rssi", d.h, native.Device.RSSI)
}

// Connected reports whether the device is connected.
func (d *Device) Connected() (bool, error) {
	return call("connected", d.h, native.Device.Connected)
}

// UUIDs returns the service UUIDs advertised by the device, in the order
// given by the native library.
func (d *Device) UUIDs() ([]string, error) {
	return call("uuids", d.h, native.Device.UUIDs)
}

// Modalias returns the modalias of the device, such as
// usb:v1D6Bp0246d0535. ok is false when the device has none.
func (d *Device) Modalias() (modalias string, ok bool, err error) {
	n, err := call("modalias", d.h, func(dev native.Device) (nullable, error) {
		return optional(dev.Modalias())
	})
	return n.value, n.ok, err
}

// Adapter returns the adapter the device belongs to. The returned Adapter
// has its own lifetime; deleting it does not affect d.
func (d *Device) Adapter() (*Adapter, error) {
	a, err := call("adapter", d.h, native.Device.Adapter)
	if err != nil {
		return nil, err
	}
	return newAdapter(a), nil
}

// Services returns the GATT services of the device. Each service must be
// deleted separately.
func (d *Device) Services() ([]*GattService, error) {
	list, err := call("services", d.h, native.Device.Services)
	if err != nil {
		return nil, err
	}
	return newServices(list), nil
}

// Find waits until the device exposes a GATT service with the given UUID and
// returns it. Services are resolved by the daemon after connecting, so Find
// polls every PollInterval until the service shows up or ctx is done. In
// the latter case the error is of KindRuntime and wraps ctx.Err().
func (d *Device) Find(ctx context.Context, uuid string) (*GattService, error) {
	for {
		services, err := d.Services()
		if err != nil {
			return nil, err
		}
		if s := takeService(services, uuid); s != nil {
			return s, nil
		}
		select {
		case <-ctx.Done():
			return nil, interrupted(ctx, "find-service", d.h)
		case <-time.After(PollInterval):
		}
	}
}

// takeService returns the service with the given UUID and deletes the
// others.
func takeService(services []*GattService, uuid string) *GattService {
	var found *GattService
	for _, s := range services {
		if found == nil {
			if u, err := s.UUID(); err == nil && strings.EqualFold(u, uuid) {
				found = s
				continue
			}
		}
		s.Delete()
	}
	return found
}
