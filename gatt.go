package tinyb

import (
	"context"
	"strings"
	"time"

	"tinygo.org/x/tinyb/internal/handle"
	"tinygo.org/x/tinyb/internal/native"
)

// GattService is a GATT service of a connected device.
type GattService struct {
	h handle.Handle
}

func newServices(list []native.GattService) []*GattService {
	services := make([]*GattService, len(list))
	for i, s := range list {
		services[i] = &GattService{h: register(TypeGattService, s)}
	}
	return services
}

// Type returns TypeGattService.
func (s *GattService) Type() ObjectType {
	return TypeGattService
}

// Handle returns the opaque handle of the service.
func (s *GattService) Handle() uint64 {
	return uint64(s.h)
}

// Clone returns a new GattService for the same service.
func (s *GattService) Clone() (*GattService, error) {
	c, err := call("service-clone", s.h, func(svc native.GattService) (native.GattService, error) {
		return svc.Clone()
	})
	if err != nil {
		return nil, err
	}
	return &GattService{h: register(TypeGattService, c)}, nil
}

// Delete releases the native service.
func (s *GattService) Delete() error {
	return release("service-delete", s.h)
}

// UUID returns the 128-bit UUID of the service in its string form.
func (s *GattService) UUID() (string, error) {
	return call("service-uuid", s.h, native.GattService.UUID)
}

// Primary reports whether this is a primary service.
func (s *GattService) Primary() (bool, error) {
	return call("service-primary", s.h, native.GattService.Primary)
}

// Device returns the device exposing the service.
func (s *GattService) Device() (*Device, error) {
	d, err := call("service-device", s.h, native.GattService.Device)
	if err != nil {
		return nil, err
	}
	return newDevice(d), nil
}

// Characteristics returns the characteristics of the service. Each
// characteristic must be deleted separately.
func (s *GattService) Characteristics() ([]*GattCharacteristic, error) {
	list, err := call("service-characteristics", s.h, native.GattService.Characteristics)
	if err != nil {
		return nil, err
	}
	chars := make([]*GattCharacteristic, len(list))
	for i, c := range list {
		chars[i] = &GattCharacteristic{h: register(TypeGattCharacteristic, c)}
	}
	return chars, nil
}

// Find waits until the service has a characteristic with the given UUID and
// returns it.
func (s *GattService) Find(ctx context.Context, uuid string) (*GattCharacteristic, error) {
	for {
		chars, err := s.Characteristics()
		if err != nil {
			return nil, err
		}
		var found *GattCharacteristic
		for _, c := range chars {
			if found == nil {
				if u, err := c.UUID(); err == nil && strings.EqualFold(u, uuid) {
					found = c
					continue
				}
			}
			c.Delete()
		}
		if found != nil {
			return found, nil
		}
		select {
		case <-ctx.Done():
			return nil, interrupted(ctx, "service-find", s.h)
		case <-time.After(PollInterval):
		}
	}
}

// GattCharacteristic is a characteristic of a GATT service.
type GattCharacteristic struct {
	h handle.Handle
}

// Type returns TypeGattCharacteristic.
func (c *GattCharacteristic) Type() ObjectType {
	return TypeGattCharacteristic
}

// Handle returns the opaque handle of the characteristic.
func (c *GattCharacteristic) Handle() uint64 {
	return uint64(c.h)
}

// Clone returns a new GattCharacteristic for the same characteristic.
func (c *GattCharacteristic) Clone() (*GattCharacteristic, error) {
	n, err := call("characteristic-clone", c.h, func(ch native.GattCharacteristic) (native.GattCharacteristic, error) {
		return ch.Clone()
	})
	if err != nil {
		return nil, err
	}
	return &GattCharacteristic{h: register(TypeGattCharacteristic, n)}, nil
}

// Delete releases the native characteristic.
func (c *GattCharacteristic) Delete() error {
	return release("characteristic-delete", c.h)
}

// UUID returns the 128-bit UUID of the characteristic in its string form.
func (c *GattCharacteristic) UUID() (string, error) {
	return call("characteristic-uuid", c.h, native.GattCharacteristic.UUID)
}

// Flags returns the characteristic properties, such as "read" or "notify".
func (c *GattCharacteristic) Flags() ([]string, error) {
	return call("characteristic-flags", c.h, native.GattCharacteristic.Flags)
}

// ReadValue reads the current value of the characteristic from the device.
func (c *GattCharacteristic) ReadValue() ([]byte, error) {
	return call("characteristic-read", c.h, native.GattCharacteristic.ReadValue)
}

// WriteValue writes value to the characteristic and waits for the response.
func (c *GattCharacteristic) WriteValue(value []byte) error {
	return exec("characteristic-write", c.h, func(ch native.GattCharacteristic) error {
		return ch.WriteValue(value)
	})
}
