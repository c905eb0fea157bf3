package tinyb

import "errors"

// MAC represents a MAC address, in little endian format.
type MAC [6]byte

var errInvalidMAC = errors.New("tinyb: failed to parse MAC address")

// ParseMAC parses the given MAC address, which must be in 11:22:33:AA:BB:CC
// format. Lower case hex digits are accepted. If it cannot be parsed, an
// error is returned.
func ParseMAC(s string) (mac MAC, err error) {
	if len(s) != 17 {
		err = errInvalidMAC
		return
	}
	macIndex := 11
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i%3 == 2 {
			if c != ':' {
				err = errInvalidMAC
				return
			}
			continue
		}
		nibble, ok := hexNibble(c)
		if !ok {
			err = errInvalidMAC
			return
		}
		if macIndex%2 == 0 {
			mac[macIndex/2] |= nibble
		} else {
			mac[macIndex/2] |= nibble << 4
		}
		macIndex--
	}
	return
}

// String returns a human-readable version of this MAC address, such as
// 11:22:33:AA:BB:CC.
func (mac MAC) String() string {
	const hexDigits = "0123456789ABCDEF"
	b := make([]byte, 0, 17)
	for i := 5; i >= 0; i-- {
		c := mac[i]
		// Insert a colon at the correct locations.
		if i != 5 {
			b = append(b, ':')
		}
		b = append(b, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return string(b)
}
