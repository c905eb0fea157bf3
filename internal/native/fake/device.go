package fake

import (
	"fmt"

	"tinygo.org/x/tinyb/internal/native"
)

// Device is the state of a fake remote device. Icon and Modalias are nil
// when the daemon would not report them.
type Device struct {
	adapter  *Adapter
	path     string
	services []*Service

	failures failures
	count    counter

	Address       string
	Name          string
	Alias         string
	Class         uint32
	Appearance    uint16
	Icon          *string
	Paired        bool
	Trusted       bool
	Blocked       bool
	LegacyPairing bool
	RSSI          int16
	Connected     bool
	UUIDs         []string
	Modalias      *string

	// Profiles lists the profile UUIDs ConnectProfile accepts. A nil list
	// accepts every well-formed UUID.
	Profiles []string
}

// AddService registers a GATT service on the device.
func (d *Device) AddService(uuid string, primary bool) *Service {
	lib := d.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	s := &Service{
		device:  d,
		path:    fmt.Sprintf("%s/service%04x", d.path, len(d.services)+1),
		UUID:    uuid,
		Primary: primary,
	}
	s.failures.init()
	d.services = append(d.services, s)
	return s
}

// Path returns the object path of the device.
func (d *Device) Path() string {
	return d.path
}

// Fail makes op fail with err on every object of this device. Pass "*" to
// fail every operation and a nil err to clear the failure.
func (d *Device) Fail(op string, err error) {
	lib := d.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err == nil {
		delete(d.failures.byOp, op)
		return
	}
	d.failures.byOp[op] = err
}

// Live returns the number of device objects not yet closed.
func (d *Device) Live() int {
	lib := d.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return d.count.live()
}

// Released returns how many device objects have been closed.
func (d *Device) Released() int {
	lib := d.adapter.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return d.count.released
}

// must be called with lib.mu held.
func (d *Device) newObject() *deviceObject {
	d.count.created++
	return &deviceObject{
		object: object{lib: d.adapter.lib, path: d.path, count: &d.count, failures: &d.failures},
		state:  d,
	}
}

type deviceObject struct {
	object
	state *Device
}

func (o *deviceObject) Clone() (native.Device, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Clone"); err != nil {
		return nil, err
	}
	return o.state.newObject(), nil
}

func (o *deviceObject) Connect() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Connect"); err != nil {
		return false, err
	}
	if o.state.Blocked {
		return false, nil
	}
	o.state.Connected = true
	return true, nil
}

func (o *deviceObject) Disconnect() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Disconnect"); err != nil {
		return false, err
	}
	if !o.state.Connected {
		return false, nil
	}
	o.state.Connected = false
	return true, nil
}

func (o *deviceObject) profile(op, uuid string) (bool, error) {
	if err := o.check(op); err != nil {
		return false, err
	}
	if !validUUID(uuid) {
		return false, native.InvalidArgument(fmt.Sprintf("fake: malformed profile UUID %q", uuid))
	}
	if o.state.Profiles == nil {
		return true, nil
	}
	for _, p := range o.state.Profiles {
		if p == uuid {
			return true, nil
		}
	}
	return false, nil
}

func (o *deviceObject) ConnectProfile(uuid string) (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	ok, err := o.profile("ConnectProfile", uuid)
	if ok {
		o.state.Connected = true
	}
	return ok, err
}

func (o *deviceObject) DisconnectProfile(uuid string) (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	return o.profile("DisconnectProfile", uuid)
}

func (o *deviceObject) Pair() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Pair"); err != nil {
		return false, err
	}
	o.state.Paired = true
	return true, nil
}

func (o *deviceObject) CancelPairing() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("CancelPairing"); err != nil {
		return false, err
	}
	return true, nil
}

func (o *deviceObject) Address() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Address"); err != nil {
		return "", err
	}
	return o.state.Address, nil
}

func (o *deviceObject) Name() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Name"); err != nil {
		return "", err
	}
	return o.state.Name, nil
}

func (o *deviceObject) Alias() (string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Alias"); err != nil {
		return "", err
	}
	return o.state.Alias, nil
}

func (o *deviceObject) SetAlias(alias string) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("SetAlias"); err != nil {
		return err
	}
	if alias == "" {
		// BlueZ resets the alias to the device name.
		alias = o.state.Name
	}
	o.state.Alias = alias
	return nil
}

func (o *deviceObject) Class() (uint32, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Class"); err != nil {
		return 0, err
	}
	return o.state.Class, nil
}

func (o *deviceObject) Appearance() (uint16, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Appearance"); err != nil {
		return 0, err
	}
	return o.state.Appearance, nil
}

func (o *deviceObject) Icon() (string, bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Icon"); err != nil {
		return "", false, err
	}
	if o.state.Icon == nil {
		return "", false, nil
	}
	return *o.state.Icon, true, nil
}

func (o *deviceObject) Paired() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Paired"); err != nil {
		return false, err
	}
	return o.state.Paired, nil
}

func (o *deviceObject) Trusted() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Trusted"); err != nil {
		return false, err
	}
	return o.state.Trusted, nil
}

func (o *deviceObject) SetTrusted(trusted bool) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("SetTrusted"); err != nil {
		return err
	}
	o.state.Trusted = trusted
	return nil
}

func (o *deviceObject) Blocked() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Blocked"); err != nil {
		return false, err
	}
	return o.state.Blocked, nil
}

func (o *deviceObject) SetBlocked(blocked bool) error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("SetBlocked"); err != nil {
		return err
	}
	o.state.Blocked = blocked
	if blocked {
		o.state.Connected = false
	}
	return nil
}

func (o *deviceObject) LegacyPairing() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("LegacyPairing"); err != nil {
		return false, err
	}
	return o.state.LegacyPairing, nil
}

func (o *deviceObject) RSSI() (int16, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("RSSI"); err != nil {
		return 0, err
	}
	return o.state.RSSI, nil
}

func (o *deviceObject) Connected() (bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Connected"); err != nil {
		return false, err
	}
	return o.state.Connected, nil
}

func (o *deviceObject) UUIDs() ([]string, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("UUIDs"); err != nil {
		return nil, err
	}
	return append([]string(nil), o.state.UUIDs...), nil
}

func (o *deviceObject) Modalias() (string, bool, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Modalias"); err != nil {
		return "", false, err
	}
	if o.state.Modalias == nil {
		return "", false, nil
	}
	return *o.state.Modalias, true, nil
}

func (o *deviceObject) Adapter() (native.Adapter, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Adapter"); err != nil {
		return nil, err
	}
	return o.state.adapter.newObject(), nil
}

func (o *deviceObject) Services() ([]native.GattService, error) {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if err := o.check("Services"); err != nil {
		return nil, err
	}
	list := make([]native.GattService, 0, len(o.state.services))
	for _, s := range o.state.services {
		list = append(list, s.newObject())
	}
	return list, nil
}
