package tinyb

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tinygo.org/x/tinyb/internal/handle"
	"tinygo.org/x/tinyb/internal/native"
)

// ObjectType identifies the kind of Bluetooth object behind a wrapper.
type ObjectType int

const (
	// TypeNone is the zero value; no wrapper reports it.
	TypeNone ObjectType = iota
	TypeAdapter            // *Adapter
	TypeDevice             // *Device
	TypeGattService        // *GattService
	TypeGattCharacteristic // *GattCharacteristic
)

func (t ObjectType) String() string {
	switch t {
	case TypeAdapter:
		return "adapter"
	case TypeDevice:
		return "device"
	case TypeGattService:
		return "gatt-service"
	case TypeGattCharacteristic:
		return "gatt-characteristic"
	default:
		return "none"
	}
}

// Object is implemented by every wrapper in this package. Each wrapper owns
// one native object, which it releases on Delete.
type Object interface {
	Type() ObjectType
	Handle() uint64
	Delete() error
}

// objects holds every live native object handed out by this package.
var objects = handle.NewTable()

func register(t ObjectType, obj native.Object) handle.Handle {
	h := objects.Put(obj)
	logger().WithFields(logrus.Fields{
		"type":   t.String(),
		"handle": uint64(h),
		"path":   obj.Path(),
	}).Debug("handle created")
	return h
}

// resolve returns the native object stored under h.
func resolve[T native.Object](op string, h handle.Handle) (T, error) {
	var zero T
	obj, err := objects.Get(h)
	if err != nil {
		return zero, translate(op, h, err)
	}
	v, ok := obj.(T)
	if !ok {
		return zero, translate(op, h, native.InvalidArgument(fmt.Sprintf("handle %d refers to a %T", h, obj)))
	}
	return v, nil
}

// call runs one native operation on the object stored under h and
// classifies its failure. On failure the zero value of R is returned.
func call[T native.Object, R any](op string, h handle.Handle, fn func(T) (R, error)) (R, error) {
	var zero R
	obj, err := resolve[T](op, h)
	if err != nil {
		return zero, err
	}
	r, err := fn(obj)
	if err != nil {
		return zero, translate(op, h, err)
	}
	return r, nil
}

// exec is call for operations without a result.
func exec[T native.Object](op string, h handle.Handle, fn func(T) error) error {
	obj, err := resolve[T](op, h)
	if err != nil {
		return err
	}
	return translate(op, h, fn(obj))
}

// release removes h from the table and closes the native object. The
// object is dropped from the table before it is closed, so a failed close
// never leaves a handle that can be released twice.
func release(op string, h handle.Handle) error {
	obj, err := objects.Delete(h)
	if err != nil {
		return translate(op, h, err)
	}
	logger().WithField("handle", uint64(h)).Debug("handle released")
	return translate(op, h, obj.(native.Object).Close())
}

// nullable converts an optional native string into the value, ok pair
// returned by the wrappers.
type nullable struct {
	value string
	ok    bool
}

func optional(value string, ok bool, err error) (nullable, error) {
	return nullable{value: value, ok: ok}, err
}
