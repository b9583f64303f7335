package classes

import (
	"fmt"

	ts "github.com/dgelessus-go/typedstream"
)

// Object is the root of the original NeXTSTEP class hierarchy, predating
// NSObject. It carries no fields of its own.
type Object struct{}

func contributeObject(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	return nil
}

// List is the NeXTSTEP predecessor of NSArray.
type List struct {
	Elements []any
}

func contributeList(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	l, ok := self.Value.(*List)
	if !ok {
		return fmt.Errorf("classes: List contribution on %T", self.Value)
	}

	var count int64
	switch version {
	case 0:
		vals, err := u.DecodeValuesOfTypes("i", "i")
		if err != nil {
			return err
		}
		count, err = asInt64(vals[1])
		if err != nil {
			return err
		}
	case 1:
		n, err := u.DecodeValueOfType("i")
		if err != nil {
			return err
		}
		count, err = asInt64(n)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("classes: unsupported List version: %d", version)
	}

	if count < 0 {
		return fmt.Errorf("classes: List element count cannot be negative: %d", count)
	}
	if count == 0 {
		l.Elements = nil
		return nil
	}

	arr, err := u.DecodeArray("@", int(count))
	if err != nil {
		return err
	}
	l.Elements = arr.Values
	return nil
}

// HashTableEntry is one key/value pair of a HashTable, in writer storage
// order.
type HashTableEntry struct {
	Key   any
	Value any
}

// HashTable is the NeXTSTEP predecessor of NSDictionary. Unlike
// NSDictionary, its keys and values can be any single dynamically chosen
// type encoding, not just objects.
type HashTable struct {
	KeyEncoding   string
	ValueEncoding string
	Entries       []HashTableEntry
}

func contributeHashTable(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	h, ok := self.Value.(*HashTable)
	if !ok {
		return fmt.Errorf("classes: HashTable contribution on %T", self.Value)
	}

	n, err := u.DecodeValueOfType("i")
	if err != nil {
		return err
	}
	count, err := asInt64(n)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("classes: HashTable entry count cannot be negative: %d", count)
	}

	var encFieldType string
	switch version {
	case 0:
		encFieldType = "*"
	case 1:
		encFieldType = "%"
	default:
		return fmt.Errorf("classes: unsupported HashTable version: %d", version)
	}

	keyEncVals, err := u.DecodeValuesOfTypes(encFieldType, encFieldType)
	if err != nil {
		return err
	}
	keyEncBytes, err := asBytes(keyEncVals[0])
	if err != nil {
		return err
	}
	valueEncBytes, err := asBytes(keyEncVals[1])
	if err != nil {
		return err
	}
	if keyEncBytes == nil || valueEncBytes == nil {
		return fmt.Errorf("classes: HashTable key/value type encodings must not be nil")
	}
	h.KeyEncoding = string(keyEncBytes)
	h.ValueEncoding = string(valueEncBytes)

	entries := make([]HashTableEntry, count)
	for i := range entries {
		key, err := u.DecodeValueOfType(h.KeyEncoding)
		if err != nil {
			return err
		}
		value, err := u.DecodeValueOfType(h.ValueEncoding)
		if err != nil {
			return err
		}
		entries[i] = HashTableEntry{Key: key, Value: value}
	}
	h.Entries = entries
	return nil
}

func init() {
	ts.RegisterClass(ts.ClassDescriptor{Name: "Object", Base: "", Versions: []int32{0}, Contribute: contributeObject, NewInstance: func() any { return &Object{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "List", Base: "Object", Versions: []int32{0, 1}, Contribute: contributeList, NewInstance: func() any { return &List{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "HashTable", Base: "Object", Versions: []int32{0, 1}, Contribute: contributeHashTable, NewInstance: func() any { return &HashTable{} }})
}
