package tinyb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/tinyb/internal/native"
)

// PollInterval is how often the Find methods look for new objects.
var PollInterval = 200 * time.Millisecond

var errManagerClosed = errors.New("manager closed")

// Manager is the entry point of the package. It holds the connection to the
// native Bluetooth library. Objects obtained through it must be deleted
// before the manager is closed.
type Manager struct {
	mu     sync.Mutex
	lib    native.Library
	closed bool
}

func newManager(lib native.Library) *Manager {
	return &Manager{lib: lib}
}

func (m *Manager) library(op string) (native.Library, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, &Error{Op: op, Kind: KindRuntime, Err: errManagerClosed}
	}
	return m.lib, nil
}

// Adapters returns every adapter on the system.
func (m *Manager) Adapters() ([]*Adapter, error) {
	lib, err := m.library("adapters")
	if err != nil {
		return nil, err
	}
	list, err := lib.Adapters()
	if err != nil {
		return nil, translate("adapters", 0, err)
	}
	adapters := make([]*Adapter, len(list))
	for i, a := range list {
		adapters[i] = newAdapter(a)
	}
	return adapters, nil
}

// DefaultAdapter returns the first adapter on the system.
func (m *Manager) DefaultAdapter() (*Adapter, error) {
	lib, err := m.library("default-adapter")
	if err != nil {
		return nil, err
	}
	a, err := lib.DefaultAdapter()
	if err != nil {
		return nil, translate("default-adapter", 0, err)
	}
	return newAdapter(a), nil
}

// Devices returns every device known to any adapter.
func (m *Manager) Devices() ([]*Device, error) {
	lib, err := m.library("devices")
	if err != nil {
		return nil, err
	}
	list, err := lib.Devices()
	if err != nil {
		return nil, translate("devices", 0, err)
	}
	return newDevices(list), nil
}

// StartDiscovery starts discovery on the default adapter.
func (m *Manager) StartDiscovery() (bool, error) {
	a, err := m.DefaultAdapter()
	if err != nil {
		return false, err
	}
	defer a.Delete()
	return a.StartDiscovery()
}

// StopDiscovery stops discovery on the default adapter.
func (m *Manager) StopDiscovery() (bool, error) {
	a, err := m.DefaultAdapter()
	if err != nil {
		return false, err
	}
	defer a.Delete()
	return a.StopDiscovery()
}

// Find waits for a device matching every non-empty criterion. Names match
// exactly, addresses case-insensitively. When adapter is nil devices of all
// adapters are considered. If no device shows up before ctx is done, Find
// fails with a KindRuntime error that wraps ctx.Err().
func (m *Manager) Find(ctx context.Context, name, address string, adapter *Adapter) (*Device, error) {
	for {
		var (
			devices []*Device
			err     error
		)
		if adapter != nil {
			devices, err = adapter.Devices()
		} else {
			devices, err = m.Devices()
		}
		if err != nil {
			return nil, err
		}
		if d := takeDevice(devices, name, address); d != nil {
			return d, nil
		}
		select {
		case <-ctx.Done():
			return nil, interrupted(ctx, "find", 0)
		case <-time.After(PollInterval):
		}
	}
}

// takeDevice returns the first matching device and deletes the others.
func takeDevice(devices []*Device, name, address string) *Device {
	var found *Device
	for _, d := range devices {
		if found == nil && deviceMatches(d, name, address) {
			found = d
			continue
		}
		d.Delete()
	}
	return found
}

func deviceMatches(d *Device, name, address string) bool {
	if address != "" {
		a, err := d.Address()
		if err != nil || !strings.EqualFold(a, address) {
			return false
		}
	}
	if name != "" {
		n, err := d.Name()
		if err != nil || n != name {
			return false
		}
	}
	return true
}

// Close closes the connection to the native library. Objects obtained from
// the manager must be deleted before calling Close.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return translate("close", 0, m.lib.Close())
}
