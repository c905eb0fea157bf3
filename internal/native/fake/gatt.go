package fake

import (
	"fmt"

	"tinygo.org/x/tinyb/internal/native"
)

// Service is the state of a fake GATT service.
type Service struct {
	device *Device
	path   string
	chars  []*Characteristic

	failures failures
	count    counter

	UUID    string
	Primary bool
}

// AddCharacteristic registers a characteristic on the service.
func (s *Service) AddCharacteristic(uuid string, flags ...string) *Characteristic {
	lib := s.device.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	c := &Characteristic{
		service: s,
		path:    fmt.Sprintf("%s/char%04x", s.path, len(s.chars)+1),
		UUID:    uuid,
		Flags:   flags,
	}
	c.failures.init()
	s.chars = append(s.chars, c)
	return c
}

// Fail makes op fail with err on every object of this service.
func (s *Service) Fail(op string, err error) {
	lib := s.device.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err == nil {
		delete(s.failures.byOp, op)
		return
	}
	s.failures.byOp[op] = err
}

// Live returns the number of service objects not yet closed.
func (s *Service) Live() int {
	lib := s.device.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return s.count.live()
}

// must be called with lib.mu held.
func (s *Service) newObject() *serviceObject {
	s.count.created++
	return &serviceObject{
		object: object{lib: s.device.adapter.lib, path: s.path, count: &s.count, failures: &s.failures},
		state:  s,
	}
}

type serviceObject struct {
	object
	state *Service
}

func (o *serviceObject) Clone() (native.GattService, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Clone"); err != nil {
		return nil, err
	}
	return o.state.newObject(), nil
}

func (o *serviceObject) UUID() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("UUID"); err != nil {
		return "", err
	}
	return o.state.UUID, nil
}

func (o *serviceObject) Primary() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Primary"); err != nil {
		return false, err
	}
	return o.state.Primary, nil
}

func (o *serviceObject) Device() (native.Device, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Device"); err != nil {
		return nil, err
	}
	return o.state.device.newObject(), nil
}

func (o *serviceObject) Characteristics() ([]native.GattCharacteristic, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Characteristics"); err != nil {
		return nil, err
	}
	list := make([]native.GattCharacteristic, 0, len(o.state.chars))
	for _, c := range o.state.chars {
		list = append(list, c.newObject())
	}
	return list, nil
}

// Characteristic is the state of a fake GATT characteristic.
type Characteristic struct {
	service *Service
	path    string

	failures failures
	count    counter

	UUID  string
	Flags []string
	Value []byte

	// Writes records every value written, oldest first.
	Writes [][]byte
}

// Fail makes op fail with err on every object of this characteristic.
func (c *Characteristic) Fail(op string, err error) {
	lib := c.service.device.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err == nil {
		delete(c.failures.byOp, op)
		return
	}
	c.failures.byOp[op] = err
}

// must be called with lib.mu held.
func (c *Characteristic) newObject() *characteristicObject {
	c.count.created++
	return &characteristicObject{
		object: object{lib: c.service.device.adapter.lib, path: c.path, count: &c.count, failures: &c.failures},
		state:  c,
	}
}

type characteristicObject struct {
	object
	state *Characteristic
}

func (o *characteristicObject) Clone() (native.GattCharacteristic, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Clone"); err != nil {
		return nil, err
	}
	return o.state.newObject(), nil
}

func (o *characteristicObject) UUID() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("UUID"); err != nil {
		return "", err
	}
	return o.state.UUID, nil
}

func (o *characteristicObject) Flags() ([]string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Flags"); err != nil {
		return nil, err
	}
	return append([]string(nil), o.state.Flags...), nil
}

func (o *characteristicObject) ReadValue() ([]byte, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("ReadValue"); err != nil {
		return nil, err
	}
	return append([]byte(nil), o.state.Value...), nil
}

func (o *characteristicObject) WriteValue(value []byte) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("WriteValue"); err != nil {
		return err
	}
	v := append([]byte(nil), value...)
	o.state.Value = v
	o.state.Writes = append(o.state.Writes, v)
	return nil
}
