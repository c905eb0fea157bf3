package tinyb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinygo.org/x/tinyb/internal/native"
	"tinygo.org/x/tinyb/internal/native/fake"
)

func TestManagerAdapters(t *testing.T) {
	lib := fake.New()
	lib.AddAdapter("hci0")
	lib.AddAdapter("hci1")
	m := newManager(lib)
	defer m.Close()

	adapters, err := m.Adapters()
	require.NoError(t, err)
	require.Len(t, adapters, 2)
	name, err := adapters[1].Name()
	require.NoError(t, err)
	assert.Equal(t, "hci1", name)
	for _, a := range adapters {
		require.NoError(t, a.Delete())
	}

	def, err := m.DefaultAdapter()
	require.NoError(t, err)
	defer def.Delete()
	name, err = def.Name()
	require.NoError(t, err)
	assert.Equal(t, "hci0", name)
}

func TestManagerNoAdapter(t *testing.T) {
	m := newManager(fake.New())
	defer m.Close()

	a, err := m.DefaultAdapter()
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrRuntime)

	ok, err := m.StartDiscovery()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrRuntime)
}

func TestManagerDiscovery(t *testing.T) {
	lib := fake.New()
	a := lib.AddAdapter("hci0")
	m := newManager(lib)
	defer m.Close()

	ok, err := m.StartDiscovery()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, a.Discovering)

	ok, err = m.StopDiscovery()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, a.Discovering)

	// The default adapter is released after each call.
	assert.Equal(t, 0, a.Live())

	a.Powered = false
	ok, err = m.StartDiscovery()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrRuntime)
}

func TestManagerFind(t *testing.T) {
	f := newFixture(t)
	other := f.adapter.AddDevice("11:22:33:44:55:66")
	other.Name = "Keyboard"

	dev, err := f.manager.Find(context.Background(), "", "b0:b4:48:c9:4b:01", nil)
	require.NoError(t, err)
	defer dev.Delete()
	address, err := dev.Address()
	require.NoError(t, err)
	assert.Equal(t, sensorTagAddress, address)

	// Devices that did not match are released.
	assert.Equal(t, 0, other.Live())

	kb, err := f.manager.Find(context.Background(), "Keyboard", "", nil)
	require.NoError(t, err)
	defer kb.Delete()
	assert.Equal(t, 1, other.Live())
}

func TestManagerFindOnAdapter(t *testing.T) {
	lib := fake.New()
	lib.AddAdapter("hci0").AddDevice("11:22:33:44:55:66")
	second := lib.AddAdapter("hci1")
	second.AddDevice("AA:BB:CC:DD:EE:FF").Name = "Speaker"
	m := newManager(lib)
	defer m.Close()

	adapters, err := m.Adapters()
	require.NoError(t, err)
	defer func() {
		for _, a := range adapters {
			a.Delete()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	d, err := m.Find(ctx, "Speaker", "", adapters[0])
	assert.Nil(t, d)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrRuntime)
	assert.Equal(t, KindRuntime, KindOf(err))

	d, err = m.Find(context.Background(), "Speaker", "", adapters[1])
	require.NoError(t, err)
	require.NoError(t, d.Delete())
}

func TestManagerFindWaitsForDevice(t *testing.T) {
	saved := PollInterval
	PollInterval = 5 * time.Millisecond
	defer func() { PollInterval = saved }()

	lib := fake.New()
	a := lib.AddAdapter("hci0")
	m := newManager(lib)
	defer m.Close()

	go func() {
		time.Sleep(20 * time.Millisecond)
		a.AddDevice("11:22:33:44:55:66")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d, err := m.Find(ctx, "", "11:22:33:44:55:66", nil)
	require.NoError(t, err)
	require.NoError(t, d.Delete())
}

func TestManagerClose(t *testing.T) {
	lib := fake.New()
	a := lib.AddAdapter("hci0")
	m := newManager(lib)

	adapter, err := m.DefaultAdapter()
	require.NoError(t, err)
	require.NoError(t, adapter.Delete())
	assert.Equal(t, 0, a.Live())

	require.NoError(t, m.Close())
	assert.True(t, lib.Closed())
	assert.NoError(t, m.Close())

	_, err = m.Adapters()
	assert.ErrorIs(t, err, ErrRuntime)
	_, err = m.DefaultAdapter()
	assert.ErrorIs(t, err, ErrRuntime)
	_, err = m.Devices()
	assert.ErrorIs(t, err, ErrRuntime)
	assert.ErrorIs(t, err, errManagerClosed)
}

func TestHandleTypeMismatch(t *testing.T) {
	f := newFixture(t)
	dev := f.open(t)
	defer dev.Delete()

	// A device handle used through an adapter wrapper.
	wrong := &Adapter{h: dev.h}
	_, err := wrong.Address()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var argErr *native.InvalidArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestFindContextErrorsAreClassified(t *testing.T) {
	f := newFixture(t)
	f.device.AddService(temperatureService, true)
	dev := f.open(t)
	defer dev.Delete()
	svc, err := dev.Find(context.Background(), temperatureService)
	require.NoError(t, err)
	defer svc.Delete()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finds := map[string]func() error{
		"manager": func() error { _, err := f.manager.Find(ctx, "Nobody", "", nil); return err },
		"device":  func() error { _, err := dev.Find(ctx, "0000180f-0000-1000-8000-00805f9b34fb"); return err },
		"service": func() error { _, err := svc.Find(ctx, temperatureConfig); return err },
	}
	sentinels := []error{ErrGeneric, ErrOutOfMemory, ErrRuntime, ErrInvalidArgument}
	for name, find := range finds {
		t.Run(name, func(t *testing.T) {
			err := find()
			require.Error(t, err)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, KindRuntime, KindOf(err))

			matched := 0
			for _, s := range sentinels {
				if errors.Is(err, s) {
					matched++
				}
			}
			assert.Equal(t, 1, matched)
		})
	}
}

func TestObjectTypeString(t *testing.T) {
	tests := map[ObjectType]string{
		TypeNone:               "none",
		TypeAdapter:            "adapter",
		TypeDevice:             "device",
		TypeGattService:        "gatt-service",
		TypeGattCharacteristic: "gatt-characteristic",
	}
	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}
	assert.Equal(t, "none", (TypeGattCharacteristic + 1).String())
}
