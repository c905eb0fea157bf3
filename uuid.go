package tinyb

// This file implements 16-bit and 128-bit UUIDs as defined in the Bluetooth
// specification. BlueZ always reports the 128-bit string form; profile and
// service arguments are normalized to that form before they are handed to
// the daemon.

import (
	"errors"
	"strings"
)

// UUID is a single UUID as used in the Bluetooth stack. It is represented as a
// [4]uint32 instead of a [16]byte for efficiency. uuid[3] holds the most
// significant bits.
type UUID [4]uint32

var errInvalidUUID = errors.New("tinyb: failed to parse UUID")

// New16BitUUID returns a new 128-bit UUID based on a 16-bit UUID.
//
// Note: only use registered UUIDs. See
// https://www.bluetooth.com/specifications/gatt/services/ for a list.
func New16BitUUID(shortUUID uint16) UUID {
	// https://stackoverflow.com/questions/36212020/how-can-i-convert-a-bluetooth-16-bit-service-uuid-into-a-128-bit-uuid
	var uuid UUID
	uuid[0] = 0x5F9B34FB
	uuid[1] = 0x80000080
	uuid[2] = 0x00001000
	uuid[3] = uint32(shortUUID)
	return uuid
}

// Is16Bit returns whether this UUID is a 16-bit BLE UUID.
func (uuid UUID) Is16Bit() bool {
	return uuid.Is32Bit() && uuid[3] == uint32(uint16(uuid[3]))
}

// Is32Bit returns whether this UUID is a 32-bit BLE UUID.
func (uuid UUID) Is32Bit() bool {
	return uuid[0] == 0x5F9B34FB && uuid[1] == 0x80000080 && uuid[2] == 0x00001000
}

// ParseUUID parses a UUID in the 00001234-0000-1000-8000-00805f9b34fb form.
// The 4 and 8 hex digit short forms ("180d", "0000180d") are accepted as
// well and expanded with the Bluetooth base UUID. Hex digits may be upper or
// lower case.
func ParseUUID(s string) (uuid UUID, err error) {
	switch len(s) {
	case 4, 8:
		v, ok := parseHex(s)
		if !ok {
			return UUID{}, errInvalidUUID
		}
		uuid = New16BitUUID(0)
		uuid[3] = v
		return uuid, nil
	case 36:
	default:
		return UUID{}, errInvalidUUID
	}

	digits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return UUID{}, errInvalidUUID
			}
			continue
		}
		nibble, ok := hexNibble(c)
		if !ok {
			return UUID{}, errInvalidUUID
		}
		word := 3 - digits/8
		uuid[word] = uuid[word]<<4 | uint32(nibble)
		digits++
	}
	return uuid, nil
}

// String returns the lower-case 128-bit string form of the UUID, such as
// 00001234-0000-1000-8000-00805f9b34fb.
func (uuid UUID) String() string {
	const hexDigits = "0123456789abcdef"
	var b strings.Builder
	b.Grow(36)
	for i := 0; i < 32; i++ {
		switch i {
		case 8, 12, 16, 20:
			b.WriteByte('-')
		}
		word := uuid[3-i/8]
		shift := uint(28 - (i%8)*4)
		b.WriteByte(hexDigits[(word>>shift)&0xf])
	}
	return b.String()
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 0xA, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 0xA, true
	}
	return 0, false
}

func parseHex(s string) (uint32, bool) {
	var v uint32
	for i := 0; i < len(s); i++ {
		nibble, ok := hexNibble(s[i])
		if !ok {
			return 0, false
		}
		v = v<<4 | uint32(nibble)
	}
	return v, true
}
