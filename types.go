package typedstream

// Streamer versions. Only StreamerVersionCurrent is supported by this
// decoder; StreamerVersionOldNeXTSTEP is rejected with ErrInvalidTypedStream.
const (
	StreamerVersionOldNeXTSTEP int8 = 3
	StreamerVersionCurrent     int8 = 4
)

// Signature tags. Exactly one of these (both 11 bytes long) must follow the
// header's signature-length byte; it selects the stream's byte order.
const (
	SignatureBigEndian    = "typedstream"
	SignatureLittleEndian = "streamtyped"
)

// Historical system_version values seen in the wild. Informational only;
// the decoder does not reject unknown values.
const (
	SystemVersion82   uint32 = 82
	SystemVersion83   uint32 = 83
	SystemVersion90   uint32 = 90
	SystemVersion900  uint32 = 900
	SystemVersion901  uint32 = 901
	SystemVersion905  uint32 = 905
	SystemVersion930  uint32 = 930
	SystemVersion1000 uint32 = 1000
)

// Head-byte tags. A head byte in [firstTag, lastTag] selects one of these;
// any other value is a literal signed 8-bit integer.
const (
	tagInteger2      int8 = -127
	tagInteger4      int8 = -126
	tagFloatingPoint int8 = -125
	tagNew           int8 = -124
	tagNil           int8 = -123
	tagEndOfObject   int8 = -122

	firstTag int8 = -128
	lastTag  int8 = -111

	// firstReferenceNumber is one past lastTag; reference numbers on the wire
	// are biased by this value to recover a zero-based table index.
	firstReferenceNumber int8 = -110
)

// ReferentKind identifies what a shared-object table slot holds, and what
// kind a reference on the wire declares it expects.
type ReferentKind int

const (
	ReferentCString ReferentKind = iota
	ReferentClass
	ReferentObject
)

func (k ReferentKind) String() string {
	switch k {
	case ReferentCString:
		return "C_STRING"
	case ReferentClass:
		return "CLASS"
	case ReferentObject:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}
