//go:build !linux

package tinyb

// Open returns ErrNotSupported: only the BlueZ daemon on Linux exposes the
// device object model this package wraps.
func Open() (*Manager, error) {
	return nil, ErrNotSupported
}
