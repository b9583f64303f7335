package typedstream

// Event is the type of value produced by (*Reader).Next. Concrete event
// types are the structs and named types below; callers
// normally type-switch on the dynamic type.
type Event interface {
	eventTag() string
}

// IntEvent is a literal or tag-decoded signed integer value.
type IntEvent int64

func (IntEvent) eventTag() string { return "int" }

// FloatEvent is a literal or tag-decoded IEEE 754 float value.
type FloatEvent float64

func (FloatEvent) eventTag() string { return "float" }

// BytesEvent is a run of raw, unshared bytes (the result of reading an
// unshared string, e.g. for the '+' encoding).
type BytesEvent []byte

func (BytesEvent) eventTag() string { return "bytes" }

// NilEvent marks an absent value (shared string, object, or class chain
// terminator all read the same -123 tag).
type NilEvent struct{}

func (NilEvent) eventTag() string { return "nil" }

// ReferenceEvent is a back-reference into the shared-object table, tagged
// with the kind the reader expected at the point it was read.
type ReferenceEvent struct {
	Kind  ReferentKind
	Index int
}

func (ReferenceEvent) eventTag() string { return "reference" }

// CStringEvent is a literal (not-yet-shared) C string about to be appended to
// the shared-object table. Its bytes never contain NUL.
type CStringEvent []byte

func (CStringEvent) eventTag() string { return "cstring" }

// AtomEvent is a deduplicated C string read through the shared-string table
// (type encoding '%').
type AtomEvent []byte

func (AtomEvent) eventTag() string { return "atom" }

// SelectorEvent is an Objective-C selector, a shared string under type
// encoding ':'.
type SelectorEvent []byte

func (SelectorEvent) eventTag() string { return "selector" }

// SingleClassEvent is one literal link in a class chain.
type SingleClassEvent struct {
	Name    []byte
	Version int32
}

func (SingleClassEvent) eventTag() string { return "single_class" }

// BeginObjectEvent opens a literal object; it is followed by a class chain
// (SingleClassEvent* then NilEvent or a ReferenceEvent of kind
// ReferentClass), then zero or more typed-value groups, then EndObjectEvent.
type BeginObjectEvent struct{}

func (BeginObjectEvent) eventTag() string { return "begin_object" }

// EndObjectEvent closes the object opened by the most recent BeginObjectEvent.
type EndObjectEvent struct{}

func (EndObjectEvent) eventTag() string { return "end_object" }

// ByteArrayEvent is a materialized '[N c]'/'[N C]' byte array, read as one
// contiguous blob rather than N element events.
type ByteArrayEvent []byte

func (ByteArrayEvent) eventTag() string { return "byte_array" }

// BeginArrayEvent opens a non-byte array; N element-value subsequences
// follow, then EndArrayEvent.
type BeginArrayEvent struct {
	Length int
}

func (BeginArrayEvent) eventTag() string { return "begin_array" }

// EndArrayEvent closes the array opened by the most recent BeginArrayEvent.
type EndArrayEvent struct{}

func (EndArrayEvent) eventTag() string { return "end_array" }

// BeginStructEvent opens a struct; one field-value subsequence per field
// encoding follows, then EndStructEvent.
type BeginStructEvent struct {
	// Name is the struct's wire name; "" if anonymous, "?" if the writer
	// explicitly anonymized it.
	Name string
}

func (BeginStructEvent) eventTag() string { return "begin_struct" }

// EndStructEvent closes the struct opened by the most recent BeginStructEvent.
type EndStructEvent struct{}

func (EndStructEvent) eventTag() string { return "end_struct" }

// BeginTypedValuesEvent opens a typed-value group; it carries the group's
// split type encodings, each followed by one value subsequence, then
// EndTypedValuesEvent (synthesized by the reader; it has no wire
// representation of its own).
type BeginTypedValuesEvent struct {
	Encodings []string
}

func (BeginTypedValuesEvent) eventTag() string { return "begin_typed_values" }

// EndTypedValuesEvent closes the group opened by the most recent
// BeginTypedValuesEvent.
type EndTypedValuesEvent struct{}

func (EndTypedValuesEvent) eventTag() string { return "end_typed_values" }

// SkipEvent is produced by the '!' encoding: it consumes no bytes and
// carries no value, but still occupies a position in its typed-value group.
type SkipEvent struct{}

func (SkipEvent) eventTag() string { return "skip" }
