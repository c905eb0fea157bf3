package fake

import "tinygo.org/x/tinyb/internal/native"

// Adapter is the state of a fake adapter.
type Adapter struct {
	lib     *Library
	path    string
	devices []*Device

	failures failures
	count    counter

	Address     string
	Name        string
	Alias       string
	Powered     bool
	Discovering bool
}

// AddDevice registers a new device with the given address on the adapter.
func (a *Adapter) AddDevice(address string) *Device {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()
	d := &Device{
		adapter: a,
		path:    devicePath(a.path, address),
		Address: address,
		Alias:   address,
	}
	d.failures.init()
	a.devices = append(a.devices, d)
	return d
}

// Path returns the object path of the adapter.
func (a *Adapter) Path() string {
	return a.path
}

// Fail makes op fail with err on every object of this adapter. Pass "*" to
// fail every operation and a nil err to clear the failure.
func (a *Adapter) Fail(op string, err error) {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()
	if err == nil {
		delete(a.failures.byOp, op)
		return
	}
	a.failures.byOp[op] = err
}

// Live returns the number of adapter objects not yet closed.
func (a *Adapter) Live() int {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()
	return a.count.live()
}

// must be called with lib.mu held.
func (a *Adapter) newObject() *adapterObject {
	a.count.created++
	return &adapterObject{
		object: object{lib: a.lib, path: a.path, count: &a.count, failures: &a.failures},
		state:  a,
	}
}

type adapterObject struct {
	object
	state *Adapter
}

func (o *adapterObject) Clone() (native.Adapter, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Clone"); err != nil {
		return nil, err
	}
	return o.state.newObject(), nil
}

func (o *adapterObject) Address() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Address"); err != nil {
		return "", err
	}
	return o.state.Address, nil
}

func (o *adapterObject) Name() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Name"); err != nil {
		return "", err
	}
	return o.state.Name, nil
}

func (o *adapterObject) Alias() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Alias"); err != nil {
		return "", err
	}
	return o.state.Alias, nil
}

func (o *adapterObject) SetAlias(alias string) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("SetAlias"); err != nil {
		return err
	}
	o.state.Alias = alias
	return nil
}

func (o *adapterObject) Powered() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Powered"); err != nil {
		return false, err
	}
	return o.state.Powered, nil
}

func (o *adapterObject) SetPowered(powered bool) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("SetPowered"); err != nil {
		return err
	}
	o.state.Powered = powered
	if !powered {
		o.state.Discovering = false
	}
	return nil
}

func (o *adapterObject) Discovering() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Discovering"); err != nil {
		return false, err
	}
	return o.state.Discovering, nil
}

func (o *adapterObject) StartDiscovery() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("StartDiscovery"); err != nil {
		return false, err
	}
	if !o.state.Powered {
		return false, &native.RuntimeError{Msg: "fake: adapter not powered"}
	}
	o.state.Discovering = true
	return true, nil
}

func (o *adapterObject) StopDiscovery() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("StopDiscovery"); err != nil {
		return false, err
	}
	was := o.state.Discovering
	o.state.Discovering = false
	return was, nil
}

func (o *adapterObject) Devices() ([]native.Device, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Devices"); err != nil {
		return nil, err
	}
	list := make([]native.Device, 0, len(o.state.devices))
	for _, d := range o.state.devices {
		list = append(list, d.newObject())
	}
	return list, nil
}
