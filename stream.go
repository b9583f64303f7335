package typedstream

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
)

// ReaderOption configures a [Reader].
type ReaderOption func(*Reader)

// withCloser arranges for Close to also close c. Used internally by Open,
// which assumes ownership of the underlying source; NewReader and
// NewReaderFromBytes never set this, since the caller retains ownership of an
// io.Reader it constructed.
func withCloser(c io.Closer) ReaderOption {
	return func(r *Reader) { r.closer = c }
}

// Reader is the low-level typedstream event reader. It parses the header
// eagerly at construction, then exposes a lazy, pull-based sequence of
// [Event] values via Next. Exactly one head byte of lookahead is ever held,
// and only transiently, while deciding how to continue.
//
// A Reader is not safe for concurrent use; it is a single-threaded, one-pass
// pipeline from byte source to event sequence.
type Reader struct {
	order         binary.ByteOrder
	systemVersion uint32

	src    *bufio.Reader
	closer io.Closer
	pos    int

	sharedStrings []string

	events  chan eventResult
	stop    chan struct{}
	closed  bool
	err     error
}

type eventResult struct {
	ev  Event
	err error
}

// SystemVersion returns the stream header's informational system_version
// field.
func (r *Reader) SystemVersion() uint32 { return r.systemVersion }

// ByteOrder returns the byte order selected by the stream header's
// signature.
func (r *Reader) ByteOrder() binary.ByteOrder { return r.order }

// NewReader constructs a Reader over src, parsing the header eagerly. The
// caller retains ownership of src; Close will not close it.
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{src: bufio.NewReader(src)}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	r.events = make(chan eventResult)
	r.stop = make(chan struct{})
	go r.run()
	return r, nil
}

// NewReaderFromBytes constructs a Reader over an in-memory byte slice.
func NewReaderFromBytes(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data))
}

// Close releases the underlying byte source if this Reader owns it (i.e. was
// constructed via Open), and stops the
// background event-production goroutine. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.stop)
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Next returns the next event in the stream, or io.EOF once the stream has
// been cleanly exhausted at a group boundary. Any other error is terminal:
// the Reader must not be used again.
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	res, ok := <-r.events
	if !ok {
		r.err = io.EOF
		return nil, io.EOF
	}
	if res.err != nil {
		r.err = res.err
		return nil, res.err
	}
	return res.ev, nil
}

// --- header ---

func (r *Reader) readHeader() error {
	verByte, err := r.readByteStrict()
	if err != nil {
		return err
	}
	switch int8(verByte) {
	case StreamerVersionCurrent:
		// ok
	case StreamerVersionOldNeXTSTEP:
		return newStreamErr(ErrInvalidTypedStream, r.pos, "old NeXTSTEP streamer version is not supported")
	default:
		return newStreamErr(ErrInvalidTypedStream, r.pos, "unsupported streamer version")
	}

	sigLen, err := r.readByteStrict()
	if err != nil {
		return err
	}
	if sigLen != 11 {
		return newStreamErr(ErrInvalidTypedStream, r.pos, "unexpected signature length")
	}
	sig, err := r.readBytesStrict(int(sigLen))
	if err != nil {
		return err
	}
	switch string(sig) {
	case SignatureBigEndian:
		r.order = binary.BigEndian
	case SignatureLittleEndian:
		r.order = binary.LittleEndian
	default:
		return newStreamErr(ErrInvalidTypedStream, r.pos, "unrecognized stream signature")
	}

	sysVer, err := r.readGenericInt(false, nil)
	if err != nil {
		return err
	}
	r.systemVersion = uint32(sysVer)
	return nil
}

// --- raw byte helpers ---

func (r *Reader) readByteStrict() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, newStreamErr(ErrInvalidTypedStream, r.pos, "premature end of stream")
	}
	r.pos++
	return b, nil
}

func (r *Reader) readBytesStrict(n int) ([]byte, error) {
	if n < 0 {
		return nil, newStreamErr(ErrInvalidTypedStream, r.pos, "negative length")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, newStreamErr(ErrInvalidTypedStream, r.pos, "premature end of stream")
	}
	r.pos += n
	return buf, nil
}

func (r *Reader) readHeadStrict() (int8, error) {
	b, err := r.readByteStrict()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// --- generic integer / float encoding (the byte-level rules of §4.2) ---

func (r *Reader) readGenericInt(signed bool, headByte *int8) (int64, error) {
	h, err := r.resolveHead(headByte)
	if err != nil {
		return 0, err
	}
	if h < firstTag || h > lastTag {
		if signed {
			return int64(h), nil
		}
		return int64(uint8(h)), nil
	}
	switch h {
	case tagInteger2:
		b, err := r.readBytesStrict(2)
		if err != nil {
			return 0, err
		}
		v := r.order.Uint16(b)
		if signed {
			return int64(int16(v)), nil
		}
		return int64(v), nil
	case tagInteger4:
		b, err := r.readBytesStrict(4)
		if err != nil {
			return 0, err
		}
		v := r.order.Uint32(b)
		if signed {
			return int64(int32(v)), nil
		}
		return int64(v), nil
	default:
		return 0, newStreamErr(ErrInvalidTypedStream, r.pos, "unexpected tag in integer context")
	}
}

func (r *Reader) readFloatValue(bits int, headByte *int8) (float64, error) {
	h, err := r.resolveHead(headByte)
	if err != nil {
		return 0, err
	}
	if h == tagFloatingPoint {
		if bits == 32 {
			b, err := r.readBytesStrict(4)
			if err != nil {
				return 0, err
			}
			return float64(math.Float32frombits(r.order.Uint32(b))), nil
		}
		b, err := r.readBytesStrict(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
	iv, err := r.readGenericInt(true, &h)
	return float64(iv), err
}

// resolveHead returns *headByte if given, else reads a fresh head byte. This
// is the Go expression of "methods accept an optional already-read head to
// avoid re-reading after peeking".
func (r *Reader) resolveHead(headByte *int8) (int8, error) {
	if headByte != nil {
		return *headByte, nil
	}
	return r.readHeadStrict()
}

// --- strings ---

func (r *Reader) readUnsharedStringFromHead(headByte *int8) (data []byte, present bool, err error) {
	h, err := r.resolveHead(headByte)
	if err != nil {
		return nil, false, err
	}
	if h == tagNil {
		return nil, false, nil
	}
	length, err := r.readGenericInt(false, &h)
	if err != nil {
		return nil, false, err
	}
	data, err = r.readBytesStrict(int(length))
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *Reader) readSharedStringFromHead(headByte *int8) (data []byte, present bool, err error) {
	h, err := r.resolveHead(headByte)
	if err != nil {
		return nil, false, err
	}
	if h == tagNil {
		return nil, false, nil
	}
	if h == tagNew {
		data, present, err = r.readUnsharedStringFromHead(nil)
		if err != nil {
			return nil, false, err
		}
		if !present {
			return nil, false, newStreamErr(ErrInvalidTypedStream, r.pos, "shared string must have content")
		}
		r.sharedStrings = append(r.sharedStrings, string(data))
		return data, true, nil
	}
	refNum, err := r.readGenericInt(true, &h)
	if err != nil {
		return nil, false, err
	}
	idx := refIndex(refNum)
	if idx < 0 || idx >= len(r.sharedStrings) {
		return nil, false, newStreamErr(ErrInvalidTypedStream, r.pos, "shared string reference out of range")
	}
	return []byte(r.sharedStrings[idx]), true, nil
}

func refIndex(refNum int64) int {
	return int(refNum) - int(firstReferenceNumber)
}

// --- emit helper ---

// errReaderClosed is returned internally when Close stopped the goroutine
// mid-send; it is never observed by Next callers (the goroutine exits
// without attempting to report it further).
var errReaderClosed = newErr(ErrInvalidTypedStream, "reader closed")

func (r *Reader) emitEvent(ev Event) error {
	select {
	case r.events <- eventResult{ev: ev}:
		return nil
	case <-r.stop:
		return errReaderClosed
	}
}

func (r *Reader) run() {
	defer close(r.events)
	for {
		b, err := r.src.ReadByte()
		if err == io.EOF {
			return
		}
		if err != nil {
			r.reportErr(err)
			return
		}
		r.pos++
		if err := r.readTypedValueGroupFromHead(int8(b)); err != nil {
			if err != errReaderClosed {
				r.reportErr(err)
			}
			return
		}
	}
}

func (r *Reader) reportErr(err error) {
	select {
	case r.events <- eventResult{err: err}:
	case <-r.stop:
	}
}

// --- typed-value groups ---

func (r *Reader) readTypedValueGroupFromHead(head int8) error {
	data, present, err := r.readSharedStringFromHead(&head)
	if err != nil {
		return err
	}
	if !present || len(data) == 0 {
		return newStreamErr(ErrInvalidTypedStream, r.pos, "empty or nil type encoding")
	}
	encs, err := Split(string(data))
	if err != nil {
		return err
	}
	if err := r.emitEvent(BeginTypedValuesEvent{Encodings: encs}); err != nil {
		return err
	}
	for _, enc := range encs {
		if err := r.readValueByEncoding(enc); err != nil {
			return err
		}
	}
	return r.emitEvent(EndTypedValuesEvent{})
}

// --- value-by-encoding dispatch ---

func (r *Reader) readValueByEncoding(enc string) error {
	switch {
	case strings.HasPrefix(enc, "["):
		return r.readArrayValue(enc)
	case strings.HasPrefix(enc, "{"):
		return r.readStructValue(enc)
	}
	if len(enc) != 1 {
		return newStreamErr(ErrInvalidTypedStream, r.pos, "invalid type encoding: "+enc)
	}

	switch enc[0] {
	case 'c':
		b, err := r.readByteStrict()
		if err != nil {
			return err
		}
		return r.emitEvent(IntEvent(int64(int8(b))))
	case 'C':
		b, err := r.readByteStrict()
		if err != nil {
			return err
		}
		return r.emitEvent(IntEvent(int64(b)))
	case 's', 'i', 'l', 'q':
		v, err := r.readGenericInt(true, nil)
		if err != nil {
			return err
		}
		return r.emitEvent(IntEvent(v))
	case 'S', 'I', 'L', 'Q':
		v, err := r.readGenericInt(false, nil)
		if err != nil {
			return err
		}
		return r.emitEvent(IntEvent(v))
	case 'f':
		v, err := r.readFloatValue(32, nil)
		if err != nil {
			return err
		}
		return r.emitEvent(FloatEvent(v))
	case 'd':
		v, err := r.readFloatValue(64, nil)
		if err != nil {
			return err
		}
		return r.emitEvent(FloatEvent(v))
	case 'B':
		b, err := r.readByteStrict()
		if err != nil {
			return err
		}
		if b != 0 && b != 1 {
			return newStreamErr(ErrInvalidTypedStream, r.pos, "boolean byte out of range")
		}
		return r.emitEvent(IntEvent(int64(b)))
	case '*':
		return r.readCStringValue()
	case '+':
		return r.readUnsharedBytesValue()
	case '%':
		return r.readAtomValue()
	case ':':
		return r.readSelectorValue()
	case '#':
		return r.readClassChain()
	case '@':
		return r.readObjectValue()
	case '!':
		return r.emitEvent(SkipEvent{})
	default:
		return newStreamErr(ErrInvalidTypedStream, r.pos, "unknown type encoding: "+enc)
	}
}

func (r *Reader) readCStringValue() error {
	h, err := r.readHeadStrict()
	if err != nil {
		return err
	}
	if h == tagNil {
		return r.emitEvent(NilEvent{})
	}
	if h == tagNew {
		data, present, err := r.readSharedStringFromHead(nil)
		if err != nil {
			return err
		}
		if !present {
			return newStreamErr(ErrInvalidTypedStream, r.pos, "C string must have content")
		}
		if bytes.IndexByte(data, 0) >= 0 {
			return newStreamErr(ErrInvalidTypedStream, r.pos, "NUL byte in C string")
		}
		return r.emitEvent(CStringEvent(data))
	}
	refNum, err := r.readGenericInt(true, &h)
	if err != nil {
		return err
	}
	return r.emitEvent(ReferenceEvent{Kind: ReferentCString, Index: refIndex(refNum)})
}

func (r *Reader) readUnsharedBytesValue() error {
	data, present, err := r.readUnsharedStringFromHead(nil)
	if err != nil {
		return err
	}
	if !present {
		return r.emitEvent(NilEvent{})
	}
	return r.emitEvent(BytesEvent(data))
}

func (r *Reader) readAtomValue() error {
	data, present, err := r.readSharedStringFromHead(nil)
	if err != nil {
		return err
	}
	if !present {
		return r.emitEvent(NilEvent{})
	}
	return r.emitEvent(AtomEvent(data))
}

func (r *Reader) readSelectorValue() error {
	data, present, err := r.readSharedStringFromHead(nil)
	if err != nil {
		return err
	}
	if !present {
		return r.emitEvent(NilEvent{})
	}
	return r.emitEvent(SelectorEvent(data))
}

// readClassChain reads zero or more SingleClassEvent links, terminated by a
// NilEvent or a ReferenceEvent of kind ReferentClass. It is used both for the
// '#' encoding and for the class-chain that follows every BeginObjectEvent.
func (r *Reader) readClassChain() error {
	for {
		h, err := r.readHeadStrict()
		if err != nil {
			return err
		}
		if h == tagNil {
			return r.emitEvent(NilEvent{})
		}
		if h == tagNew {
			name, present, err := r.readSharedStringFromHead(nil)
			if err != nil {
				return err
			}
			if !present || len(name) == 0 {
				return newStreamErr(ErrInvalidTypedStream, r.pos, "empty class name")
			}
			version, err := r.readGenericInt(true, nil)
			if err != nil {
				return err
			}
			if err := r.emitEvent(SingleClassEvent{Name: name, Version: int32(version)}); err != nil {
				return err
			}
			continue
		}
		refNum, err := r.readGenericInt(true, &h)
		if err != nil {
			return err
		}
		return r.emitEvent(ReferenceEvent{Kind: ReferentClass, Index: refIndex(refNum)})
	}
}

func (r *Reader) readObjectValue() error {
	h, err := r.readHeadStrict()
	if err != nil {
		return err
	}
	if h == tagNil {
		return r.emitEvent(NilEvent{})
	}
	if h == tagNew {
		if err := r.emitEvent(BeginObjectEvent{}); err != nil {
			return err
		}
		if err := r.readClassChain(); err != nil {
			return err
		}
		for {
			h2, err := r.readHeadStrict()
			if err != nil {
				return err
			}
			if h2 == tagEndOfObject {
				return r.emitEvent(EndObjectEvent{})
			}
			if err := r.readTypedValueGroupFromHead(h2); err != nil {
				return err
			}
		}
	}
	refNum, err := r.readGenericInt(true, &h)
	if err != nil {
		return err
	}
	return r.emitEvent(ReferenceEvent{Kind: ReferentObject, Index: refIndex(refNum)})
}

func (r *Reader) readArrayValue(enc string) error {
	n, elem, err := ParseArray(enc)
	if err != nil {
		return err
	}
	if elem == "c" || elem == "C" {
		data, err := r.readBytesStrict(n)
		if err != nil {
			return err
		}
		return r.emitEvent(ByteArrayEvent(data))
	}
	if err := r.emitEvent(BeginArrayEvent{Length: n}); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := r.readValueByEncoding(elem); err != nil {
			return err
		}
	}
	return r.emitEvent(EndArrayEvent{})
}

func (r *Reader) readStructValue(enc string) error {
	name, fields, err := ParseStruct(enc)
	if err != nil {
		return err
	}
	if err := r.emitEvent(BeginStructEvent{Name: name}); err != nil {
		return err
	}
	for _, f := range fields {
		if err := r.readValueByEncoding(f); err != nil {
			return err
		}
	}
	return r.emitEvent(EndStructEvent{})
}
