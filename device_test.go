package tinyb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinygo.org/x/tinyb/internal/native"
	"tinygo.org/x/tinyb/internal/native/fake"
)

const sensorTagAddress = "B0:B4:48:C9:4B:01"

type fixture struct {
	lib     *fake.Library
	adapter *fake.Adapter
	device  *fake.Device
	manager *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib := fake.New()
	a := lib.AddAdapter("hci0")
	a.Address = "00:1A:7D:DA:71:13"

	d := a.AddDevice(sensorTagAddress)
	d.Name = "CC2650 SensorTag"
	d.Alias = "CC2650 SensorTag"
	d.Class = 0x240404
	d.Appearance = 0x0200
	d.RSSI = -63
	d.LegacyPairing = true
	d.UUIDs = []string{
		"00001800-0000-1000-8000-00805f9b34fb",
		"0000180a-0000-1000-8000-00805f9b34fb",
		"f000aa00-0451-4000-b000-000000000000",
	}

	m := newManager(lib)
	t.Cleanup(func() { m.Close() })
	return &fixture{lib: lib, adapter: a, device: d, manager: m}
}

func (f *fixture) open(t *testing.T) *Device {
	t.Helper()
	devices, err := f.manager.Devices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	return devices[0]
}

func strptr(s string) *string {
	return &s
}

// failureCategories are the four native failure categories together with
// the kind each must be reported as.
var failureCategories = []struct {
	name     string
	err      error
	kind     Kind
	sentinel error
}{
	{
		name:     "out of memory",
		err:      fmt.Errorf("allocating reply: %w", native.ErrNoMemory),
		kind:     KindOutOfMemory,
		sentinel: ErrOutOfMemory,
	},
	{
		name:     "runtime",
		err:      &native.RuntimeError{Msg: "device unreachable"},
		kind:     KindRuntime,
		sentinel: ErrRuntime,
	},
	{
		name:     "invalid argument",
		err:      native.InvalidArgument("malformed argument"),
		kind:     KindInvalidArgument,
		sentinel: ErrInvalidArgument,
	},
	{
		name:     "other",
		err:      errors.New("something unexpected"),
		kind:     KindGeneric,
		sentinel: ErrGeneric,
	},
}

// deviceOps lists every Device operation with the native operation it
// forwards to.
var deviceOps = []struct {
	native string
	run    func(d *Device) error
}{
	{"Clone", func(d *Device) error { _, err := d.Clone(); return err }},
	{"Connect", func(d *Device) error { _, err := d.Connect(); return err }},
	{"Disconnect", func(d *Device) error { _, err := d.Disconnect(); return err }},
	{"ConnectProfile", func(d *Device) error {
		_, err := d.ConnectProfile("0000110b-0000-1000-8000-00805f9b34fb")
		return err
	}},
	{"DisconnectProfile", func(d *Device) error {
		_, err := d.DisconnectProfile("0000110b-0000-1000-8000-00805f9b34fb")
		return err
	}},
	{"Pair", func(d *Device) error { _, err := d.Pair(); return err }},
	{"CancelPairing", func(d *Device) error { _, err := d.CancelPairing(); return err }},
	{"Address", func(d *Device) error { _, err := d.Address(); return err }},
	{"Name", func(d *Device) error { _, err := d.Name(); return err }},
	{"Alias", func(d *Device) error { _, err := d.Alias(); return err }},
	{"SetAlias", func(d *Device) error { return d.SetAlias("Foo") }},
	{"Class", func(d *Device) error { _, err := d.Class(); return err }},
	{"Appearance", func(d *Device) error { _, err := d.Appearance(); return err }},
	{"Icon", func(d *Device) error { _, _, err := d.Icon(); return err }},
	{"Paired", func(d *Device) error { _, err := d.Paired(); return err }},
	{"Trusted", func(d *Device) error { _, err := d.Trusted(); return err }},
	{"SetTrusted", func(d *Device) error { return d.SetTrusted(true) }},
	{"Blocked", func(d *Device) error { _, err := d.Blocked(); return err }},
	{"SetBlocked", func(d *Device) error { return d.SetBlocked(true) }},
	{"LegacyPairing", func(d *Device) error { _, err := d.LegacyPairing(); return err }},
	{"RSSI", func(d *Device) error { _, err := d.RSSI(); return err }},
	{"Connected", func(d *Device) error { _, err := d.Connected(); return err }},
	{"UUIDs", func(d *Device) error { _, err := d.UUIDs(); return err }},
	{"Modalias", func(d *Device) error { _, _, err := d.Modalias(); return err }},
	{"Adapter", func(d *Device) error { _, err := d.Adapter(); return err }},
	{"Services", func(d *Device) error { _, err := d.Services(); return err }},
}

func TestDeviceFailureKinds(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	for _, op := range deviceOps {
		for _, fc := range failureCategories {
			t.Run(op.native+"/"+fc.name, func(t *testing.T) {
				f.device.Fail(op.native, fc.err)
				defer f.device.Fail(op.native, nil)

				err := op.run(dev)
				require.Error(t, err)
				assert.ErrorIs(t, err, fc.sentinel)
				assert.Equal(t, fc.kind, KindOf(err))
				assert.ErrorIs(t, err, fc.err)
				assert.Contains(t, err.Error(), fc.err.Error())
				for _, other := range failureCategories {
					if other.kind != fc.kind {
						assert.NotErrorIs(t, err, other.sentinel)
					}
				}
			})
		}
	}
}

func TestDeviceDeleteFailureKinds(t *testing.T) {
	for _, fc := range failureCategories {
		t.Run(fc.name, func(t *testing.T) {
			f := newFixture(t)
			dev := f.open(t)
			f.device.Fail("Close", fc.err)

			err := dev.Delete()
			assert.ErrorIs(t, err, fc.sentinel)
			assert.Equal(t, 1, f.device.Released())

			// The handle is gone even though closing failed.
			err = dev.Delete()
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, 1, f.device.Released())
		})
	}
}

func TestDeviceFailureReturnsZeroValues(t *testing.T) {
	f := newFixture(t)
	f.device.Icon = strptr("camera-video")
	f.device.Modalias = strptr("usb:v1D6Bp0246d0535")
	f.device.Connected = true
	dev := f.open(t)
	defer dev.Delete()

	f.device.Fail("*", &native.RuntimeError{Msg: "daemon call failed"})
	defer f.device.Fail("*", nil)

	name, err := dev.Name()
	assert.Error(t, err)
	assert.Equal(t, "", name)

	connected, err := dev.Connected()
	assert.Error(t, err)
	assert.False(t, connected)

	rssi, err := dev.RSSI()
	assert.Error(t, err)
	assert.Equal(t, int16(0), rssi)

	icon, ok, err := dev.Icon()
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", icon)

	uuids, err := dev.UUIDs()
	assert.Error(t, err)
	assert.Nil(t, uuids)

	adapter, err := dev.Adapter()
	assert.Error(t, err)
	assert.Nil(t, adapter)
}

func TestFailurePriority(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{
			name: "runtime caused by memory exhaustion",
			err:  &native.RuntimeError{Msg: "call failed", Err: native.ErrNoMemory},
			kind: KindOutOfMemory,
		},
		{
			name: "invalid argument wrapping runtime",
			err:  &native.InvalidArgumentError{Msg: "bad", Err: &native.RuntimeError{Msg: "inner"}},
			kind: KindRuntime,
		},
		{
			name: "no memory wrapper",
			err:  native.NoMemory(errors.New("org.freedesktop.DBus.Error.NoMemory")),
			kind: KindOutOfMemory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			dev := f.open(t)
			defer dev.Delete()
			f.device.Fail("Connect", tt.err)

			ok, err := dev.Connect()
			assert.False(t, ok)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestDeviceAccessors(t *testing.T) {
	f := newFixture(t)
	f.device.Icon = strptr("camera-video")
	f.device.Modalias = strptr("usb:v1D6Bp0246d0535")
	f.device.Trusted = true
	dev := f.open(t)
	defer dev.Delete()

	assert.Equal(t, TypeDevice, dev.Type())
	assert.NotZero(t, dev.Handle())

	address, err := dev.Address()
	require.NoError(t, err)
	assert.Equal(t, sensorTagAddress, address)

	name, err := dev.Name()
	require.NoError(t, err)
	assert.Equal(t, "CC2650 SensorTag", name)

	class, err := dev.Class()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x240404), class)

	appearance, err := dev.Appearance()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0200), appearance)

	icon, ok, err := dev.Icon()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "camera-video", icon)

	modalias, ok, err := dev.Modalias()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "usb:v1D6Bp0246d0535", modalias)

	trusted, err := dev.Trusted()
	require.NoError(t, err)
	assert.True(t, trusted)

	legacy, err := dev.LegacyPairing()
	require.NoError(t, err)
	assert.True(t, legacy)

	rssi, err := dev.RSSI()
	require.NoError(t, err)
	assert.Equal(t, int16(-63), rssi)
}

func TestDeviceIconAndModaliasAbsent(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	icon, ok, err := dev.Icon()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", icon)

	modalias, ok, err := dev.Modalias()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", modalias)
}

func TestDeviceUUIDsOrder(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	uuids, err := dev.UUIDs()
	require.NoError(t, err)
	assert.Equal(t, f.device.UUIDs, uuids)

	// The result is a copy.
	uuids[0] = "changed"
	again, err := dev.UUIDs()
	require.NoError(t, err)
	assert.Equal(t, "00001800-0000-1000-8000-00805f9b34fb", again[0])
}

func TestDeviceSetAliasRoundTrip(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	require.NoError(t, dev.SetAlias("Foo"))
	alias, err := dev.Alias()
	require.NoError(t, err)
	assert.Equal(t, "Foo", alias)
}

func TestDeviceSetters(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	require.NoError(t, dev.SetTrusted(true))
	trusted, err := dev.Trusted()
	require.NoError(t, err)
	assert.True(t, trusted)

	require.NoError(t, dev.SetBlocked(true))
	blocked, err := dev.Blocked()
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, dev.SetBlocked(false))
	blocked, err = dev.Blocked()
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestDeviceConnection(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	ok, err := dev.Connect()
	require.NoError(t, err)
	assert.True(t, ok)

	connected, err := dev.Connected()
	require.NoError(t, err)
	assert.True(t, connected)

	ok, err = dev.Disconnect()
	require.NoError(t, err)
	assert.True(t, ok)

	// Nothing to disconnect.
	ok, err = dev.Disconnect()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dev.Pair()
	require.NoError(t, err)
	assert.True(t, ok)
	paired, err := dev.Paired()
	require.NoError(t, err)
	assert.True(t, paired)

	ok, err = dev.CancelPairing()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeviceConnectProfile(t *testing.T) {
	f := newFixture(t)
	f.device.Profiles = []string{"0000110b-0000-1000-8000-00805f9b34fb"}
	dev := f.open(t)
	defer dev.Delete()

	ok, err := dev.ConnectProfile("0000110b-0000-1000-8000-00805f9b34fb")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dev.ConnectProfile("0000110a-0000-1000-8000-00805f9b34fb")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dev.DisconnectProfile("not-a-uuid")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeviceClone(t *testing.T) {
	f := newFixture(t)
	f.device.Icon = strptr("camera-video")
	dev := f.open(t)

	clone, err := dev.Clone()
	require.NoError(t, err)
	assert.NotEqual(t, dev.Handle(), clone.Handle())
	assert.Equal(t, 2, f.device.Live())

	for _, get := range []func(d *Device) (string, error){
		(*Device).Address,
		(*Device).Name,
		(*Device).Alias,
	} {
		want, err := get(dev)
		require.NoError(t, err)
		got, err := get(clone)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	wantIcon, _, _ := dev.Icon()
	gotIcon, _, _ := clone.Icon()
	assert.Equal(t, wantIcon, gotIcon)

	// Deleting the original leaves the clone usable.
	require.NoError(t, dev.Delete())
	address, err := clone.Address()
	require.NoError(t, err)
	assert.Equal(t, sensorTagAddress, address)

	require.NoError(t, clone.Delete())
	assert.Equal(t, 0, f.device.Live())
}

func TestDeviceDeleteOnce(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	live := objects.Len()

	require.NoError(t, dev.Delete())
	assert.Equal(t, 1, f.device.Released())
	assert.Equal(t, live-1, objects.Len())

	err := dev.Delete()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, f.device.Released())

	_, err = dev.Address()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	zero := &Device{}
	assert.ErrorIs(t, zero.Delete(), ErrInvalidArgument)
}

func TestDeviceAdapterIsIndependent(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	adapter, err := dev.Adapter()
	require.NoError(t, err)
	assert.NotEqual(t, dev.Handle(), adapter.Handle())
	assert.Equal(t, TypeAdapter, adapter.Type())

	address, err := adapter.Address()
	require.NoError(t, err)
	assert.Equal(t, "00:1A:7D:DA:71:13", address)

	require.NoError(t, adapter.Delete())
	assert.Equal(t, 0, f.adapter.Live())

	// The device is still valid.
	name, err := dev.Name()
	require.NoError(t, err)
	assert.Equal(t, "CC2650 SensorTag", name)
}

func TestDeviceServices(t *testing.T) {
	f := newFixture(t)
	f.device.AddService("00001800-0000-1000-8000-00805f9b34fb", true)
	temp := f.device.AddService("f000aa00-0451-4000-b000-000000000000", true)
	dev := f.open(t)
	defer dev.Delete()

	services, err := dev.Services()
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.NotEqual(t, services[0].Handle(), services[1].Handle())

	uuid, err := services[1].UUID()
	require.NoError(t, err)
	assert.Equal(t, "f000aa00-0451-4000-b000-000000000000", uuid)
	assert.Equal(t, 1, temp.Live())

	for _, s := range services {
		require.NoError(t, s.Delete())
	}
	assert.Equal(t, 0, temp.Live())

	// The device outlives its services.
	_, err = dev.Address()
	assert.NoError(t, err)
}

func TestDeviceFind(t *testing.T) {
	f := newFixture(t)
	f.device.AddService("00001800-0000-1000-8000-00805f9b34fb", true)
	temp := f.device.AddService("f000aa00-0451-4000-b000-000000000000", true)
	dev := f.open(t)
	defer dev.Delete()

	s, err := dev.Find(context.Background(), "F000AA00-0451-4000-B000-000000000000")
	require.NoError(t, err)
	defer s.Delete()
	uuid, err := s.UUID()
	require.NoError(t, err)
	assert.Equal(t, "f000aa00-0451-4000-b000-000000000000", uuid)
	assert.Equal(t, 1, temp.Live())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	missing, err := dev.Find(ctx, "0000180f-0000-1000-8000-00805f9b34fb")
	assert.Nil(t, missing)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrRuntime)
	assert.Equal(t, KindRuntime, KindOf(err))
}
