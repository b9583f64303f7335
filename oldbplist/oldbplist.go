// Package oldbplist decodes the old NeXTSTEP binary property list format
// used by -[NSArchiver encodePropertyList:] and NSSerializer, distinct from
// the modern "bplist00" format.
package oldbplist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// ErrInvalidPropertyList is returned for any structurally invalid old binary
// property list: a bad type number, misaligned padding, a non-string
// dictionary key, a value whose length disagrees with its declared byte
// count, or trailing data after the root value.
var ErrInvalidPropertyList = errors.New("oldbplist: invalid property list")

func newErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPropertyList, fmt.Sprintf(format, args...))
}

// Decode decodes an old binary property list, returning nil, []byte, string,
// []any, or map[string]any depending on the root value's type. It is an
// error for any bytes to remain after the root value.
func Decode(data []byte) (any, error) {
	d := &decoder{r: bytes.NewReader(data), total: len(data)}
	v, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	if d.r.Len() != 0 {
		return nil, newErr("%d bytes remain after the end of the property list", d.r.Len())
	}
	return v, nil
}

type decoder struct {
	r     *bytes.Reader
	total int
}

func (d *decoder) pos() int {
	return d.total - d.r.Len()
}

func (d *decoder) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(d.r, buf)
	if err != nil || read != n {
		return nil, newErr("attempted to read %d bytes, but only got %d", n, read)
	}
	return buf, nil
}

func (d *decoder) readUint32() (uint32, error) {
	b, err := d.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

const (
	typeArray      = 2
	typeData       = 4
	typeString8Bit = 5
	typeStringUTF16 = 6
	typeDictionary = 7
	typeNil        = 8
)

func (d *decoder) decodeValue() (any, error) {
	typeNumber, err := d.readUint32()
	if err != nil {
		return nil, err
	}

	switch typeNumber {
	case typeData, typeString8Bit, typeStringUTF16:
		length, err := d.readUint32()
		if err != nil {
			return nil, err
		}
		data, err := d.readExact(int(length))
		if err != nil {
			return nil, err
		}
		padLen := (4 - int(length)%4) % 4
		pad, err := d.readExact(padLen)
		if err != nil {
			return nil, err
		}
		for _, b := range pad {
			if b != 0 {
				return nil, newErr("alignment padding after string/data should be all zero bytes, got %v", pad)
			}
		}
		switch typeNumber {
		case typeData:
			return data, nil
		case typeString8Bit:
			return decodeNextstep8Bit(data)
		case typeStringUTF16:
			return decodeUTF16WithBOM(data)
		}

	case typeArray, typeDictionary:
		count, err := d.readUint32()
		if err != nil {
			return nil, err
		}

		var keys []string
		if typeNumber == typeDictionary {
			keys = make([]string, count)
			for i := range keys {
				k, err := d.decodeValue()
				if err != nil {
					return nil, err
				}
				s, ok := k.(string)
				if !ok {
					return nil, newErr("dictionary key must be a string, not %T", k)
				}
				keys[i] = s
			}
		}

		lengths := make([]uint32, count)
		for i := range lengths {
			l, err := d.readUint32()
			if err != nil {
				return nil, err
			}
			lengths[i] = l
		}

		values := make([]any, count)
		for i, expected := range lengths {
			before := d.pos()
			v, err := d.decodeValue()
			if err != nil {
				return nil, err
			}
			if got := uint32(d.pos() - before); got != expected {
				return nil, newErr("expected value to be %d bytes long, but actual length is %d", expected, got)
			}
			values[i] = v
		}

		if typeNumber == typeArray {
			return values, nil
		}
		m := make(map[string]any, count)
		for i, k := range keys {
			m[k] = values[i]
		}
		return m, nil

	case typeNil:
		return nil, nil
	}

	return nil, newErr("unknown/invalid type number: %d", typeNumber)
}

func decodeUTF16WithBOM(data []byte) (string, error) {
	if len(data) < 2 {
		return "", newErr("UTF-16 string too short to contain a byte order mark")
	}
	var order binary.ByteOrder
	switch {
	case data[0] == 0xfe && data[1] == 0xff:
		order = binary.BigEndian
	case data[0] == 0xff && data[1] == 0xfe:
		order = binary.LittleEndian
	default:
		return "", newErr("UTF-16 string does not start with a recognized byte order mark")
	}
	rest := data[2:]
	if len(rest)%2 != 0 {
		return "", newErr("UTF-16 string has an odd number of data bytes")
	}
	units := make([]uint16, len(rest)/2)
	for i := range units {
		units[i] = order.Uint16(rest[i*2 : i*2+2])
	}
	return string(utf16.Decode(units)), nil
}
