// Package handle implements the table of opaque handles that stand in for
// native Bluetooth objects. A wrapper only ever stores a Handle; the native
// object it refers to lives in a Table until it is deleted.
package handle

import (
	"errors"
	"sync"
)

// Handle is an opaque reference to an object stored in a Table. The zero
// value is never issued.
type Handle uint64

var (
	// ErrInvalid is returned for the zero handle and for handles that were
	// never issued by the table.
	ErrInvalid = errors.New("handle: invalid handle")

	// ErrReleased is returned for handles that were issued and have since
	// been deleted.
	ErrReleased = errors.New("handle: handle already released")
)

// Table maps handles to objects. It is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	last    Handle
	objects map[Handle]interface{}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{objects: make(map[Handle]interface{})}
}

// Put stores obj and returns a new handle for it. Handles are never reused.
func (t *Table) Put(obj interface{}) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last++
	t.objects[t.last] = obj
	return t.last
}

// Get returns the object stored under h.
func (t *Table) Get(h Handle) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(h)
}

// Delete removes h from the table and returns the object it referred to.
// The caller becomes responsible for releasing that object.
func (t *Table) Delete(h Handle) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	delete(t.objects, h)
	return obj, nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}

func (t *Table) lookup(h Handle) (interface{}, error) {
	if h == 0 || h > t.last {
		return nil, ErrInvalid
	}
	obj, ok := t.objects[h]
	if !ok {
		return nil, ErrReleased
	}
	return obj, nil
}
