// Package fake provides an in-memory native library for tests. State lives
// in Adapter, Device, Service and Characteristic values that tests populate
// directly; the native objects handed out by the library read and modify
// that state and count how often they are released.
package fake

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tinygo.org/x/tinyb/internal/native"
)

var errClosed = errors.New("fake: use of closed object")

// Library is an in-memory native.Library.
type Library struct {
	mu       sync.Mutex
	adapters []*Adapter
	closed   bool
}

// New returns an empty library.
func New() *Library {
	return &Library{}
}

// AddAdapter registers a new adapter with the given id, such as "hci0".
func (l *Library) AddAdapter(id string) *Adapter {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := &Adapter{
		lib:     l,
		path:    "/org/bluez/" + id,
		Name:    id,
		Alias:   id,
		Powered: true,
	}
	a.failures.init()
	l.adapters = append(l.adapters, a)
	return a
}

// Closed reports whether Close has been called.
func (l *Library) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Adapters implements native.Library.
func (l *Library) Adapters() ([]native.Adapter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := make([]native.Adapter, 0, len(l.adapters))
	for _, a := range l.adapters {
		list = append(list, a.newObject())
	}
	return list, nil
}

// DefaultAdapter implements native.Library.
func (l *Library) DefaultAdapter() (native.Adapter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.adapters) == 0 {
		return nil, &native.RuntimeError{Msg: "fake: no adapter available"}
	}
	return l.adapters[0].newObject(), nil
}

// Devices implements native.Library.
func (l *Library) Devices() ([]native.Device, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var list []native.Device
	for _, a := range l.adapters {
		for _, d := range a.devices {
			list = append(list, d.newObject())
		}
	}
	return list, nil
}

// Close implements native.Library.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// failures holds injected errors per operation name. The operation name is
// the name of the native interface method, such as "Connect" or "SetAlias".
// The key "*" applies to every operation.
type failures struct {
	byOp map[string]error
}

func (f *failures) init() {
	f.byOp = make(map[string]error)
}

func (f *failures) lookup(op string) error {
	if err, ok := f.byOp[op]; ok {
		return err
	}
	return f.byOp["*"]
}

// counter tracks native objects handed out for one piece of state.
type counter struct {
	created  int
	released int
}

// Live returns the number of objects not yet released.
func (c *counter) live() int {
	return c.created - c.released
}

// object is the part shared by every native object of the fake.
type object struct {
	lib      *Library
	path     string
	count    *counter
	failures *failures
	closed   bool
}

func (o *object) Path() string {
	return o.path
}

// Close releases the object. An injected "Close" failure is returned after
// the object has been released.
func (o *object) Close() error {
	o.lib.mu.Lock()
	defer o.lib.mu.Unlock()
	if o.closed {
		return errClosed
	}
	o.closed = true
	o.count.released++
	return o.failures.byOp["Close"]
}

// check must be called with lib.mu held.
func (o *object) check(op string) error {
	if o.closed {
		return errClosed
	}
	return o.failures.lookup(op)
}

func validUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range strings.ToLower(s) {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				return false
			}
		}
	}
	return true
}

func devicePath(adapterPath, address string) string {
	return fmt.Sprintf("%s/dev_%s", adapterPath, strings.ReplaceAll(address, ":", "_"))
}
