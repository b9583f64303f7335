package typedstream

import "fmt"

// Class is a decoded class descriptor: a name, a version, and an optional
// superclass link. Superclass forms a chain terminating at nil.
type Class struct {
	Name       []byte
	Version    int32
	Superclass *Class
}

// String renders the class chain as "Name(version) : Super(version) : ...".
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s(%d)", c.Name, c.Version)
	if c.Superclass != nil {
		s += " : " + c.Superclass.String()
	}
	return s
}

// IsOrInherits reports whether c is name or has name somewhere in its
// superclass chain.
func (c *Class) IsOrInherits(name string) bool {
	for cur := c; cur != nil; cur = cur.Superclass {
		if string(cur.Name) == name {
			return true
		}
	}
	return false
}

// ContributionFunc reads the typed-value groups belonging to exactly one
// class's own version of an object, given the wire-declared version for that
// class. It must validate version and call the unarchiver's decode methods in
// the exact order that class originally wrote its fields.
type ContributionFunc func(u *Unarchiver, version int32, self *KnownInstance) error

// ClassDescriptor registers a known class under its archived name.
type ClassDescriptor struct {
	// Name is the archived class name, e.g. "NSString".
	Name string
	// Base is the archived name of the immediate superclass this descriptor
	// expects, or "" if it expects to be the root of the wire chain.
	Base string
	// Versions lists the class versions this descriptor's Contribute
	// function accepts.
	Versions []int32
	// Contribute is invoked exactly once per decoded object, in the
	// unarchiver's top-down contribution walk, after any superclass
	// contributions have already run.
	Contribute ContributionFunc
	// NewInstance constructs a zero-value instance ready for Contribute to
	// populate. It must be non-nil for the class that the unarchiver matches
	// against the wire: if it is nil, decoding the object fails with
	// ErrClassHierarchyMismatch.
	NewInstance func() any
}

// StructDescriptor registers a known struct under its canonical
// "{Name=F1F2...}" encoding.
type StructDescriptor struct {
	// Name is the struct's archived name, e.g. "_NSPoint".
	Name string
	// Fields are the field type encodings, in wire order.
	Fields []string
	// NewInstance constructs a zero-value instance; Fields are decoded in
	// order and passed to Assign.
	NewInstance func() any
	// Assign stores the decoded value of field index i into inst.
	Assign func(inst any, i int, value any) error
}

var classRegistry = map[string]*ClassDescriptor{}
var structRegistry = map[string]*StructDescriptor{}

// RegisterClass adds desc to the process-wide class registry, keyed by
// desc.Name. Intended to be called from package-level init() functions before
// any decoding begins; registrations are not protected against concurrent
// decode calls.
func RegisterClass(desc ClassDescriptor) {
	d := desc
	classRegistry[d.Name] = &d
}

// RegisterStruct adds desc to the process-wide struct registry, keyed by
// BuildStruct(desc.Name, desc.Fields).
func RegisterStruct(desc StructDescriptor) {
	d := desc
	structRegistry[BuildStruct(d.Name, d.Fields)] = &d
}

// lookupStructByEncoding resolves a canonical struct encoding to its
// descriptor, if registered.
func lookupStructByEncoding(enc string) (*StructDescriptor, bool) {
	d, ok := structRegistry[enc]
	return d, ok
}

// resolveClass walks w's chain looking for the nearest registered ancestor
// (w itself counting as the nearest). It returns the descriptor and the link
// in the wire chain it matched, or ok=false if nothing in the chain is known.
func resolveClass(w *Class) (desc *ClassDescriptor, wire *Class, ok bool) {
	for cur := w; cur != nil; cur = cur.Superclass {
		if d, found := classRegistry[string(cur.Name)]; found {
			return d, cur, true
		}
	}
	return nil, nil, false
}

// KnownInstance is a fully-typed decoded object: an instance of a registered
// class, produced by that class's NewInstance and populated field-by-field by
// the unarchiver's top-down contribution walk.
type KnownInstance struct {
	Class *Class
	Value any
}

// GenericObject represents an object whose class (or some part of its class
// chain) is not registered. Super is non-nil when the nearest known ancestor
// was resolved and constructed; Contents holds whatever typed-value groups
// the wire carried beyond what Super's contribution consumed, in the case of
// a fully generic object, or following it, in the partially-known case.
type GenericObject struct {
	Wire     *Class
	Super    *KnownInstance
	Contents []*TypedGroup
}

// AsKnown extracts v's KnownInstance.Value if v is a *KnownInstance, or
// Super.Value if v is a *GenericObject with a known Super. A *GenericObject
// without a known Super yields (nil, false); any other v is returned
// unchanged (and false).
func AsKnown(v any) (any, bool) {
	switch t := v.(type) {
	case *KnownInstance:
		return t.Value, true
	case *GenericObject:
		if t.Super != nil {
			return t.Super.Value, true
		}
		return nil, false
	default:
		return v, false
	}
}
