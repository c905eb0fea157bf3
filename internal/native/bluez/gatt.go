//go:build linux

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/muka/go-bluetooth/bluez/profile/gatt"

	"tinygo.org/x/tinyb/internal/native"
)

// GattService wraps an org.bluez.GattService1 object. The UUID, Primary and
// Device properties never change for the lifetime of the object, so they are
// read from the properties loaded when the object was created.
type GattService struct {
	lib     *Library
	service *gatt.GattService1
}

func (l *Library) service(path dbus.ObjectPath) (*GattService, error) {
	s, err := gatt.NewGattService1(path)
	if err != nil {
		return nil, mapError("GattService1", err)
	}
	return &GattService{lib: l, service: s}, nil
}

func (s *GattService) Path() string {
	return string(s.service.Path())
}

func (s *GattService) Close() error {
	s.service.Close()
	return nil
}

func (s *GattService) Clone() (native.GattService, error) {
	return s.lib.service(s.service.Path())
}

func (s *GattService) UUID() (string, error) {
	return s.service.Properties.UUID, nil
}

func (s *GattService) Primary() (bool, error) {
	return s.service.Properties.Primary, nil
}

func (s *GattService) Device() (native.Device, error) {
	return s.lib.device(s.service.Properties.Device)
}

func (s *GattService) Characteristics() ([]native.GattCharacteristic, error) {
	paths, err := s.lib.paths(characteristicInterface, s.service.Path())
	if err != nil {
		return nil, err
	}
	list := make([]native.GattCharacteristic, 0, len(paths))
	for _, p := range paths {
		c, err := s.lib.characteristic(p)
		if err != nil {
			closeAll(list)
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

// GattCharacteristic wraps an org.bluez.GattCharacteristic1 object.
type GattCharacteristic struct {
	lib            *Library
	characteristic *gatt.GattCharacteristic1
}

func (l *Library) characteristic(path dbus.ObjectPath) (*GattCharacteristic, error) {
	c, err := gatt.NewGattCharacteristic1(path)
	if err != nil {
		return nil, mapError("GattCharacteristic1", err)
	}
	return &GattCharacteristic{lib: l, characteristic: c}, nil
}

func (c *GattCharacteristic) Path() string {
	return string(c.characteristic.Path())
}

func (c *GattCharacteristic) Close() error {
	c.characteristic.Close()
	return nil
}

func (c *GattCharacteristic) Clone() (native.GattCharacteristic, error) {
	return c.lib.characteristic(c.characteristic.Path())
}

func (c *GattCharacteristic) UUID() (string, error) {
	return c.characteristic.Properties.UUID, nil
}

func (c *GattCharacteristic) Flags() ([]string, error) {
	return append([]string(nil), c.characteristic.Properties.Flags...), nil
}

func (c *GattCharacteristic) ReadValue() ([]byte, error) {
	options := make(map[string]interface{})
	v, err := c.characteristic.ReadValue(options)
	if err != nil {
		return nil, mapError("GattCharacteristic1.ReadValue", err)
	}
	return v, nil
}

func (c *GattCharacteristic) WriteValue(value []byte) error {
	options := make(map[string]interface{})
	return mapError("GattCharacteristic1.WriteValue", c.characteristic.WriteValue(value, options))
}
