package typedstream

import (
	"io"
	"strconv"

	"github.com/dgelessus-go/typedstream/oldbplist"
)

// TypedGroup is a decoded typed-value group: the split encodings from a
// single BeginTypedValuesEvent and one decoded value per encoding, in order.
type TypedGroup struct {
	Encodings []string
	Values    []any
}

// Single reports whether g carries exactly one encoding/value pair, the
// common case.
func (g *TypedGroup) Single() bool { return len(g.Encodings) == 1 }

// Array is a decoded '[N T]' value. Bytes is non-nil for byte arrays
// (element encoding c/C); Values is non-nil otherwise.
type Array struct {
	ElementEncoding string
	Values          []any
	Bytes           []byte
}

// Unarchiver consumes events from a [Reader] and assembles them into the
// high-level object model, maintaining the shared-object table.
//
// An Unarchiver is not safe for concurrent use.
type Unarchiver struct {
	r     *Reader
	table objectTable
}

// NewUnarchiver wraps r. The Unarchiver closes r only when its own Close is
// called.
func NewUnarchiver(r *Reader) *Unarchiver {
	return &Unarchiver{r: r}
}

// Close closes the underlying reader.
func (u *Unarchiver) Close() error {
	return u.r.Close()
}

// DecodeAll drains the stream, returning every top-level typed-value group.
func (u *Unarchiver) DecodeAll() ([]*TypedGroup, error) {
	var groups []*TypedGroup
	for {
		g, err := u.DecodeTypedValues()
		if err == io.EOF {
			return groups, nil
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
}

// DecodeSingleRoot drains the stream and asserts it contains exactly one
// top-level group with exactly one value, returning that value.
func (u *Unarchiver) DecodeSingleRoot() (any, error) {
	groups, err := u.DecodeAll()
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, newErr(ErrNoRoots, "typed stream has no top-level values")
	}
	if len(groups) > 1 {
		return nil, newErr(ErrMultipleRoots, "typed stream has more than one top-level group")
	}
	if len(groups[0].Values) != 1 {
		return nil, newErr(ErrMultipleRoots, "top-level group does not contain exactly one value")
	}
	return groups[0].Values[0], nil
}

// DecodeTypedValues expects and decodes one BeginTypedValues/EndTypedValues
// group.
func (u *Unarchiver) DecodeTypedValues() (*TypedGroup, error) {
	ev, err := u.r.Next()
	if err != nil {
		return nil, err
	}
	begin, ok := ev.(BeginTypedValuesEvent)
	if !ok {
		return nil, newErr(ErrUnexpectedEncoding, "expected begin-typed-values event")
	}
	group := &TypedGroup{Encodings: begin.Encodings, Values: make([]any, len(begin.Encodings))}
	for i, enc := range begin.Encodings {
		v, err := u.DecodeAnyUntyped(enc)
		if err != nil {
			return nil, err
		}
		group.Values[i] = v
	}
	end, err := u.r.Next()
	if err != nil {
		return nil, err
	}
	if _, ok := end.(EndTypedValuesEvent); !ok {
		return nil, newErr(ErrUnexpectedEncoding, "expected end-typed-values event")
	}
	return group, nil
}

// DecodeValuesOfTypes decodes one group and asserts its wire encodings match
// expected under the tolerant [EncodingMatches] rule. An expected slot that
// is not itself a valid type encoding is treated as the archived name of a
// known class: the wire encoding at that slot must be "@", and the decoded
// value (if non-nil) must be a [KnownInstance] of that class or a subclass,
// or a [GenericObject] whose known super-instance is.
func (u *Unarchiver) DecodeValuesOfTypes(expected ...string) ([]any, error) {
	group, err := u.DecodeTypedValues()
	if err != nil {
		return nil, err
	}

	wireExpected := make([]string, len(expected))
	for i, e := range expected {
		if isRawEncoding(e) {
			wireExpected[i] = e
		} else {
			wireExpected[i] = "@"
		}
	}
	if !AllEncodingsMatch(group.Encodings, wireExpected) {
		return nil, newErr(ErrUnexpectedEncoding, "group encodings do not match expected types")
	}

	for i, e := range expected {
		if isRawEncoding(e) || group.Values[i] == nil {
			continue
		}
		if !valueIsClass(group.Values[i], e) {
			return nil, newErr(ErrUnexpectedClass, "expected instance of "+e)
		}
	}

	return group.Values, nil
}

// isRawEncoding reports whether s is a type-encoding string (as opposed to
// the archived name of a known class).
func isRawEncoding(s string) bool {
	if len(s) == 0 {
		return false
	}
	if len(s) == 1 {
		switch s[0] {
		case 'c', 'C', 's', 'S', 'i', 'I', 'l', 'L', 'q', 'Q', 'f', 'd', 'B', '*', '+', '%', ':', '#', '@', '!':
			return true
		}
		return false
	}
	return s[0] == '[' || s[0] == '{'
}

// valueIsClass reports whether v is a known instance of className or a
// subclass, looking through GenericObject.Super when v's own class is
// unknown.
func valueIsClass(v any, className string) bool {
	switch t := v.(type) {
	case *KnownInstance:
		return t.Class.IsOrInherits(className)
	case *GenericObject:
		if t.Super != nil {
			return valueIsClass(t.Super, className)
		}
		return false
	default:
		return false
	}
}

// DecodeValueOfType decodes a single-value group matching expected.
func (u *Unarchiver) DecodeValueOfType(expected string) (any, error) {
	values, err := u.DecodeValuesOfTypes(expected)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// DecodeArray synthesizes a '[N T]'-typed group request and decodes it. Like
// DecodeValueOfType, it consumes a full typed-value group of its own (the
// array is not nested inside some other already-open group).
func (u *Unarchiver) DecodeArray(elementEnc string, length int) (*Array, error) {
	enc := BuildArray(length, elementEnc)
	v, err := u.DecodeValueOfType(enc)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, newErr(ErrUnexpectedEncoding, "expected array value")
	}
	return arr, nil
}

// DecodeDataObject decodes an int length followed by a byte array of that
// length, the primitive underlying NSData.
func (u *Unarchiver) DecodeDataObject() ([]byte, error) {
	n, err := u.DecodeValueOfType("i")
	if err != nil {
		return nil, err
	}
	length, ok := n.(int64)
	if !ok || length < 0 {
		return nil, newErr(ErrInvalidTypedStream, "negative or malformed data object length")
	}
	arr, err := u.DecodeArray("c", int(length))
	if err != nil {
		return nil, err
	}
	if arr.Bytes != nil {
		return arr.Bytes, nil
	}
	return nil, nil
}

// DecodePropertyList decodes a data object and parses it as an old-style
// binary property list.
func (u *Unarchiver) DecodePropertyList() (any, error) {
	data, err := u.DecodeDataObject()
	if err != nil {
		return nil, err
	}
	v, err := oldbplist.Decode(data)
	if err != nil {
		return nil, newErr(ErrInvalidTypedStream, "property list: "+err.Error())
	}
	return v, nil
}

// DecodeAnyUntyped reads one value, dispatching on the first event. expectedEncoding
// supplies the array element / struct field encodings that the wire format
// itself does not repeat for reference events, and the struct name used for
// struct-registry lookup.
func (u *Unarchiver) DecodeAnyUntyped(expectedEncoding string) (any, error) {
	ev, err := u.r.Next()
	if err != nil {
		return nil, err
	}
	return u.decodeAnyUntypedFromHead(ev, expectedEncoding)
}

func (u *Unarchiver) decodeAnyUntypedFromHead(ev Event, expectedEncoding string) (any, error) {
	switch t := ev.(type) {
	case IntEvent:
		return int64(t), nil
	case FloatEvent:
		return float64(t), nil
	case BytesEvent:
		return []byte(t), nil
	case NilEvent:
		return nil, nil
	case ReferenceEvent:
		return u.table.lookup(t)
	case CStringEvent:
		data := []byte(t)
		u.table.appendFilled(ReferentCString, data)
		return data, nil
	case AtomEvent:
		return []byte(t), nil
	case SelectorEvent:
		return []byte(t), nil
	case SingleClassEvent, BeginObjectEvent:
		if _, ok := ev.(BeginObjectEvent); ok {
			return u.decodeObject()
		}
		return u.decodeClassChain(ev)
	case BeginArrayEvent:
		return u.decodeArrayBody(t.Length, expectedEncoding)
	case ByteArrayEvent:
		return &Array{ElementEncoding: "c", Bytes: []byte(t)}, nil
	case BeginStructEvent:
		return u.decodeStructBody(t.Name, expectedEncoding)
	case SkipEvent:
		return nil, nil
	default:
		return nil, newErr(ErrUnexpectedEncoding, "unexpected event in value position")
	}
}

// decodeClassChain recursively assembles a *Class from a class-chain head
// event, registering each literal link into the shared-object table before
// recursing into its superclass (child-before-superclass storage order).
func (u *Unarchiver) decodeClassChain(first Event) (*Class, error) {
	switch t := first.(type) {
	case NilEvent:
		return nil, nil
	case ReferenceEvent:
		if t.Kind != ReferentClass {
			return nil, newErr(ErrReferenceKindMismatch, "expected class reference")
		}
		v, err := u.table.lookup(t)
		if err != nil {
			return nil, err
		}
		cls, ok := v.(*Class)
		if !ok {
			return nil, newErr(ErrReferenceKindMismatch, "referenced slot is not a class")
		}
		return cls, nil
	case SingleClassEvent:
		cls := &Class{Name: t.Name, Version: t.Version}
		u.table.appendFilled(ReferentClass, cls)
		next, err := u.r.Next()
		if err != nil {
			return nil, err
		}
		super, err := u.decodeClassChain(next)
		if err != nil {
			return nil, err
		}
		cls.Superclass = super
		return cls, nil
	default:
		return nil, newErr(ErrUnexpectedEncoding, "expected class-chain event")
	}
}

// decodeObject implements the object-construction protocol of §4.4.
func (u *Unarchiver) decodeObject() (any, error) {
	slot := u.table.reserve()

	first, err := u.r.Next()
	if err != nil {
		return nil, err
	}
	wire, err := u.decodeClassChain(first)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, newErr(ErrInvalidTypedStream, "object has no class")
	}

	instance, allowsExtra, err := u.constructFromClass(wire, slot)
	if err != nil {
		return nil, err
	}

	if allowsExtra {
		contents, err := u.readTrailingGroups()
		if err != nil {
			return nil, err
		}
		switch v := instance.(type) {
		case *GenericObject:
			v.Contents = contents
		}
	} else {
		ev, err := u.r.Next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(EndObjectEvent); !ok {
			return nil, newErr(ErrInvalidTypedStream, "known object with no extra data must end immediately")
		}
	}

	return instance, nil
}

func (u *Unarchiver) readTrailingGroups() ([]*TypedGroup, error) {
	var groups []*TypedGroup
	for {
		ev, err := u.r.Next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(EndObjectEvent); ok {
			return groups, nil
		}
		begin, ok := ev.(BeginTypedValuesEvent)
		if !ok {
			return nil, newErr(ErrUnexpectedEncoding, "expected typed-value group or end of object")
		}
		group := &TypedGroup{Encodings: begin.Encodings, Values: make([]any, len(begin.Encodings))}
		for i, enc := range begin.Encodings {
			v, err := u.DecodeAnyUntyped(enc)
			if err != nil {
				return nil, err
			}
			group.Values[i] = v
		}
		end, err := u.r.Next()
		if err != nil {
			return nil, err
		}
		if _, ok := end.(EndTypedValuesEvent); !ok {
			return nil, newErr(ErrUnexpectedEncoding, "expected end-typed-values event")
		}
		groups = append(groups, group)
	}
}

// constructFromClass resolves wire against the class registry and
// constructs the resulting instance, returning whether it permits trailing
// data (true unless it is an exact known-class match). The instance is
// written into the reserved table slot before any contribution runs, so the
// object's own fields may refer back to it.
func (u *Unarchiver) constructFromClass(wire *Class, slot int) (any, bool, error) {
	desc, matched, ok := resolveClass(wire)
	generic := &GenericObject{Wire: wire}
	if !ok || matched != wire {
		u.table.fill(slot, generic)
	}
	if !ok {
		return generic, true, nil
	}

	known, err := u.initKnownInstance(desc, matched, slot, matched == wire)
	if err != nil {
		return nil, false, err
	}

	if matched == wire {
		return known, false, nil
	}
	generic.Super = known
	return generic, true, nil
}

// initKnownInstance runs the object-construction protocol's top-down
// contribution walk for the descriptor chain rooted at desc, matched against
// the wire chain rooted at matchedWire. If fillSlot is set, the new instance
// is written into table slot before the first contribution runs.
func (u *Unarchiver) initKnownInstance(desc *ClassDescriptor, matchedWire *Class, slot int, fillSlot bool) (*KnownInstance, error) {
	var wireChain []*Class
	for c := matchedWire; c != nil; c = c.Superclass {
		wireChain = append(wireChain, c)
	}

	var descChain []*ClassDescriptor
	for d := desc; d != nil; {
		descChain = append(descChain, d)
		if d.Base == "" {
			break
		}
		next, found := classRegistry[d.Base]
		if !found {
			return nil, newErr(ErrClassHierarchyMismatch, "registered base class "+d.Base+" is itself unregistered")
		}
		d = next
	}

	if len(wireChain) != len(descChain) {
		return nil, newErr(ErrClassHierarchyMismatch, "wire class chain length does not match registered hierarchy")
	}

	if desc.NewInstance == nil {
		return nil, newErr(ErrClassHierarchyMismatch, "class "+desc.Name+" has no constructor")
	}
	known := &KnownInstance{Class: matchedWire, Value: desc.NewInstance()}
	if fillSlot {
		u.table.fill(slot, known)
	}

	for i := len(descChain) - 1; i >= 0; i-- {
		d := descChain[i]
		w := wireChain[i]
		if string(w.Name) != d.Name {
			return nil, newErr(ErrClassHierarchyMismatch, "wire class "+string(w.Name)+" does not match registered name "+d.Name)
		}
		if !versionAccepted(d.Versions, w.Version) {
			return nil, newErr(ErrUnsupportedClassVersion, "class "+d.Name+" version "+strconv.Itoa(int(w.Version)))
		}
		if err := d.Contribute(u, w.Version, known); err != nil {
			return nil, err
		}
	}

	return known, nil
}

func versionAccepted(accepted []int32, v int32) bool {
	for _, a := range accepted {
		if a == v {
			return true
		}
	}
	return false
}

// decodeArrayBody decodes length elements of the array's element encoding,
// which is parsed from expectedEncoding.
func (u *Unarchiver) decodeArrayBody(length int, expectedEncoding string) (*Array, error) {
	_, elem, err := ParseArray(expectedEncoding)
	if err != nil {
		return nil, err
	}
	values := make([]any, length)
	for i := 0; i < length; i++ {
		v, err := u.DecodeAnyUntyped(elem)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	ev, err := u.r.Next()
	if err != nil {
		return nil, err
	}
	if _, ok := ev.(EndArrayEvent); !ok {
		return nil, newErr(ErrUnexpectedEncoding, "expected end-array event")
	}
	return &Array{ElementEncoding: elem, Values: values}, nil
}

// decodeStructBody decodes a struct's fields. If expectedEncoding resolves to
// a registered struct, its descriptor's field encodings and Assign function
// are used; otherwise fields are decoded positionally from expectedEncoding
// and wrapped as a generic field slice.
func (u *Unarchiver) decodeStructBody(wireName, expectedEncoding string) (any, error) {
	_, fields, err := ParseStruct(expectedEncoding)
	if err != nil {
		return nil, err
	}

	if desc, ok := lookupStructByEncoding(expectedEncoding); ok {
		inst := desc.NewInstance()
		for i, f := range desc.Fields {
			v, err := u.DecodeAnyUntyped(f)
			if err != nil {
				return nil, err
			}
			if err := desc.Assign(inst, i, v); err != nil {
				return nil, err
			}
		}
		if err := u.expectEndStruct(); err != nil {
			return nil, err
		}
		return inst, nil
	}

	values := make([]any, len(fields))
	for i, f := range fields {
		v, err := u.DecodeAnyUntyped(f)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if err := u.expectEndStruct(); err != nil {
		return nil, err
	}
	return &GenericStruct{Name: wireName, Fields: fields, Values: values}, nil
}

func (u *Unarchiver) expectEndStruct() error {
	ev, err := u.r.Next()
	if err != nil {
		return err
	}
	if _, ok := ev.(EndStructEvent); !ok {
		return newErr(ErrUnexpectedEncoding, "expected end-struct event")
	}
	return nil
}

// GenericStruct is an unregistered struct's decoded fields, in wire order.
type GenericStruct struct {
	Name   string
	Fields []string
	Values []any
}
