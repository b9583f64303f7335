package classes

import (
	"fmt"

	ts "github.com/dgelessus-go/typedstream"
)

// NSObject is the root of the Foundation/AppKit hierarchy; it carries no
// fields of its own.
type NSObject struct{}

// NSString is an immutable Foundation string, archived as one UTF-8-decoded
// unshared byte string.
type NSString struct {
	Value string
}

func (s *NSString) nsstring() *NSString { return s }

type hasNSString interface{ nsstring() *NSString }

// NSMutableString adds no fields of its own over NSString.
type NSMutableString struct {
	NSString
}

// NSData is an immutable byte blob, archived as a length-prefixed byte array.
type NSData struct {
	Data []byte
}

func (d *NSData) nsdata() *NSData { return d }

type hasNSData interface{ nsdata() *NSData }

// NSMutableData adds no fields of its own over NSData.
type NSMutableData struct {
	NSData
}

// NSDate is an absolute point in time, archived as an offset in seconds from
// the reference date 2001-01-01 00:00:00 UTC.
type NSDate struct {
	AbsoluteReferenceDateOffset float64
}

// NSArray is an ordered, archived as a count followed by that many object
// values.
type NSArray struct {
	Elements []any
}

func (a *NSArray) nsarray() *NSArray { return a }

type hasNSArray interface{ nsarray() *NSArray }

// NSMutableArray adds no fields of its own over NSArray.
type NSMutableArray struct {
	NSArray
}

// NSSet is an unordered collection, archived the same way as NSArray except
// the count is unsigned. Element order in Elements is writer insertion
// order, not necessarily meaningful set order.
type NSSet struct {
	Elements []any
}

func (s *NSSet) nsset() *NSSet { return s }

type hasNSSet interface{ nsset() *NSSet }

// NSMutableSet adds no fields of its own over NSSet.
type NSMutableSet struct {
	NSSet
}

// NSDictionaryEntry is one key/value pair, in writer insertion order.
type NSDictionaryEntry struct {
	Key   any
	Value any
}

// NSDictionary is archived as a count followed by that many key/value object
// pairs.
type NSDictionary struct {
	Entries []NSDictionaryEntry
}

func (d *NSDictionary) nsdictionary() *NSDictionary { return d }

type hasNSDictionary interface{ nsdictionary() *NSDictionary }

// NSMutableDictionary adds no fields of its own over NSDictionary.
type NSMutableDictionary struct {
	NSDictionary
}

// NSURL is either absolute or relative to another NSURL.
type NSURL struct {
	RelativeTo any
	Value      string
}

// NSValue is an untyped wrapper around a single value of a dynamically
// chosen type encoding, most commonly used for boxed structs.
type NSValue struct {
	TypeEncoding string
	Value        any
}

func (v *NSValue) nsvalue() *NSValue { return v }

type hasNSValue interface{ nsvalue() *NSValue }

// NSNumber adds no fields of its own over NSValue.
type NSNumber struct {
	NSValue
}

func contributeNSObject(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	return nil
}

func contributeNSString(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hs, ok := self.Value.(hasNSString)
	if !ok {
		return fmt.Errorf("classes: NSString contribution on %T", self.Value)
	}
	raw, err := u.DecodeValueOfType("+")
	if err != nil {
		return err
	}
	b, err := asBytes(raw)
	if err != nil {
		return err
	}
	hs.nsstring().Value = string(b)
	return nil
}

func contributeNoFields(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	return nil
}

func contributeNSData(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hd, ok := self.Value.(hasNSData)
	if !ok {
		return fmt.Errorf("classes: NSData contribution on %T", self.Value)
	}
	data, err := u.DecodeDataObject()
	if err != nil {
		return err
	}
	hd.nsdata().Data = data
	return nil
}

func contributeNSDate(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	d, ok := self.Value.(*NSDate)
	if !ok {
		return fmt.Errorf("classes: NSDate contribution on %T", self.Value)
	}
	v, err := u.DecodeValueOfType("d")
	if err != nil {
		return err
	}
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("classes: expected float value, got %T", v)
	}
	d.AbsoluteReferenceDateOffset = f
	return nil
}

func contributeNSArray(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	ha, ok := self.Value.(hasNSArray)
	if !ok {
		return fmt.Errorf("classes: NSArray contribution on %T", self.Value)
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
		return fmt.Errorf("classes: NSArray element count cannot be negative: %d", count)
	}
	elems := make([]any, count)
	for i := range elems {
		v, err := u.DecodeValueOfType("@")
		if err != nil {
			return err
		}
		elems[i] = v
	}
	ha.nsarray().Elements = elems
	return nil
}

func contributeNSSet(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hs, ok := self.Value.(hasNSSet)
	if !ok {
		return fmt.Errorf("classes: NSSet contribution on %T", self.Value)
	}
	n, err := u.DecodeValueOfType("I")
	if err != nil {
		return err
	}
	count, err := asInt64(n)
	if err != nil {
		return err
	}
	elems := make([]any, count)
	for i := range elems {
		v, err := u.DecodeValueOfType("@")
		if err != nil {
			return err
		}
		elems[i] = v
	}
	hs.nsset().Elements = elems
	return nil
}

func contributeNSDictionary(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hd, ok := self.Value.(hasNSDictionary)
	if !ok {
		return fmt.Errorf("classes: NSDictionary contribution on %T", self.Value)
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
		return fmt.Errorf("classes: NSDictionary element count cannot be negative: %d", count)
	}
	entries := make([]NSDictionaryEntry, count)
	for i := range entries {
		key, err := u.DecodeValueOfType("@")
		if err != nil {
			return err
		}
		value, err := u.DecodeValueOfType("@")
		if err != nil {
			return err
		}
		entries[i] = NSDictionaryEntry{Key: key, Value: value}
	}
	hd.nsdictionary().Entries = entries
	return nil
}

func contributeNSURL(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	url, ok := self.Value.(*NSURL)
	if !ok {
		return fmt.Errorf("classes: NSURL contribution on %T", self.Value)
	}
	isRelative, err := u.DecodeValueOfType("c")
	if err != nil {
		return err
	}
	n, err := asInt64(isRelative)
	if err != nil {
		return err
	}
	switch n {
	case 0:
		url.RelativeTo = nil
	case 1:
		base, err := u.DecodeValueOfType("NSURL")
		if err != nil {
			return err
		}
		url.RelativeTo = base
	default:
		return fmt.Errorf("classes: unexpected value for boolean: %d", n)
	}
	value, err := u.DecodeValueOfType("NSString")
	if err != nil {
		return err
	}
	url.Value, err = nsStringValue(value)
	return err
}

func contributeNSValue(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hv, ok := self.Value.(hasNSValue)
	if !ok {
		return fmt.Errorf("classes: NSValue contribution on %T", self.Value)
	}
	encRaw, err := u.DecodeValueOfType("*")
	if err != nil {
		return err
	}
	encBytes, err := asBytes(encRaw)
	if err != nil {
		return err
	}
	if encBytes == nil {
		return fmt.Errorf("classes: NSValue type encoding must not be nil")
	}
	enc := string(encBytes)
	value, err := u.DecodeValueOfType(enc)
	if err != nil {
		return err
	}
	v := hv.nsvalue()
	v.TypeEncoding = enc
	v.Value = value
	return nil
}

func init() {
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSObject", Base: "", Versions: []int32{0}, Contribute: contributeNSObject, NewInstance: func() any { return &NSObject{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSString", Base: "NSObject", Versions: []int32{1}, Contribute: contributeNSString, NewInstance: func() any { return &NSString{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMutableString", Base: "NSString", Versions: []int32{1}, Contribute: contributeNoFields, NewInstance: func() any { return &NSMutableString{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSData", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSData, NewInstance: func() any { return &NSData{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMutableData", Base: "NSData", Versions: []int32{0}, Contribute: contributeNoFields, NewInstance: func() any { return &NSMutableData{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSDate", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSDate, NewInstance: func() any { return &NSDate{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSArray", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSArray, NewInstance: func() any { return &NSArray{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMutableArray", Base: "NSArray", Versions: []int32{0}, Contribute: contributeNoFields, NewInstance: func() any { return &NSMutableArray{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSSet", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSSet, NewInstance: func() any { return &NSSet{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMutableSet", Base: "NSSet", Versions: []int32{0}, Contribute: contributeNoFields, NewInstance: func() any { return &NSMutableSet{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSDictionary", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSDictionary, NewInstance: func() any { return &NSDictionary{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMutableDictionary", Base: "NSDictionary", Versions: []int32{0}, Contribute: contributeNoFields, NewInstance: func() any { return &NSMutableDictionary{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSURL", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSURL, NewInstance: func() any { return &NSURL{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSValue", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSValue, NewInstance: func() any { return &NSValue{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSNumber", Base: "NSValue", Versions: []int32{0}, Contribute: contributeNoFields, NewInstance: func() any { return &NSNumber{} }})
}
