//go:build linux

package bluez

import (
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/muka/go-bluetooth/bluez"
	"github.com/muka/go-bluetooth/bluez/profile/adapter"
	"github.com/muka/go-bluetooth/bluez/profile/device"

	"tinygo.org/x/tinyb/internal/native"
)

// BlueZ object interfaces.
const (
	adapterInterface        = "org.bluez.Adapter1"
	deviceInterface         = "org.bluez.Device1"
	serviceInterface        = "org.bluez.GattService1"
	characteristicInterface = "org.bluez.GattCharacteristic1"
)

// Library is the BlueZ implementation of native.Library.
type Library struct {
	om *bluez.ObjectManager
}

// Open connects to the BlueZ object manager on the system bus.
func Open() (*Library, error) {
	om, err := bluez.GetObjectManager()
	if err != nil {
		// No system bus or no daemon: nothing a caller can fix by changing
		// arguments.
		return nil, native.Runtime(mapError("ObjectManager", err))
	}
	return &Library{om: om}, nil
}

// paths returns the sorted object paths implementing iface. When parent is
// not empty only its direct children are returned.
func (l *Library) paths(iface string, parent dbus.ObjectPath) ([]dbus.ObjectPath, error) {
	list, err := l.om.GetManagedObjects()
	if err != nil {
		return nil, mapError("ObjectManager.GetManagedObjects", err)
	}
	objects := make([]string, 0, len(list))
	for objectPath, ifaces := range list {
		if _, ok := ifaces[iface]; !ok {
			continue
		}
		if parent != "" {
			prefix := string(parent) + "/"
			if !strings.HasPrefix(string(objectPath), prefix) {
				continue
			}
			if strings.Contains(string(objectPath)[len(prefix):], "/") {
				continue
			}
		}
		objects = append(objects, string(objectPath))
	}
	sort.Strings(objects)
	paths := make([]dbus.ObjectPath, len(objects))
	for i, p := range objects {
		paths[i] = dbus.ObjectPath(p)
	}
	return paths, nil
}

// Adapters implements native.Library.
func (l *Library) Adapters() ([]native.Adapter, error) {
	paths, err := l.paths(adapterInterface, "")
	if err != nil {
		return nil, err
	}
	list := make([]native.Adapter, 0, len(paths))
	for _, p := range paths {
		a, err := l.adapter(p)
		if err != nil {
			closeAll(list)
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}

// DefaultAdapter implements native.Library. The default adapter is the
// first one in object path order, usually hci0.
func (l *Library) DefaultAdapter() (native.Adapter, error) {
	paths, err := l.paths(adapterInterface, "")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &native.RuntimeError{Msg: "bluez: no adapter available"}
	}
	return l.adapter(paths[0])
}

// Devices implements native.Library.
func (l *Library) Devices() ([]native.Device, error) {
	paths, err := l.paths(deviceInterface, "")
	if err != nil {
		return nil, err
	}
	return l.devices(paths)
}

// Close implements native.Library.
func (l *Library) Close() error {
	return nil
}

func (l *Library) adapter(path dbus.ObjectPath) (*Adapter, error) {
	a, err := adapter.NewAdapter1(path)
	if err != nil {
		return nil, mapError("Adapter1", err)
	}
	return &Adapter{lib: l, adapter: a}, nil
}

func (l *Library) device(path dbus.ObjectPath) (*Device, error) {
	d, err := device.NewDevice1(path)
	if err != nil {
		return nil, mapError("Device1", err)
	}
	return &Device{lib: l, device: d}, nil
}

func (l *Library) devices(paths []dbus.ObjectPath) ([]native.Device, error) {
	list := make([]native.Device, 0, len(paths))
	for _, p := range paths {
		d, err := l.device(p)
		if err != nil {
			closeAll(list)
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}

func closeAll[T native.Object](list []T) {
	for _, o := range list {
		o.Close()
	}
}
