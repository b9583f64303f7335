package typedstream_test

import (
	"encoding/binary"
	"io"
	"testing"

	ts "github.com/dgelessus-go/typedstream"
)

func header(le bool) []byte {
	b := []byte{0x04, 0x0B}
	if le {
		b = append(b, "streamtyped"...)
	} else {
		b = append(b, "typedstream"...)
	}
	return append(b, 0x81, 0xE8, 0x03)
}

func TestReaderHeaderLittleEndian(t *testing.T) {
	r, err := ts.NewReaderFromBytes(header(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if r.ByteOrder() != binary.LittleEndian {
		t.Errorf("expected little-endian, got %v", r.ByteOrder())
	}
	if r.SystemVersion() != 1000 {
		t.Errorf("expected system version 1000, got %d", r.SystemVersion())
	}
}

func TestReaderHeaderBigEndian(t *testing.T) {
	r, err := ts.NewReaderFromBytes(header(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if r.ByteOrder() != binary.BigEndian {
		t.Errorf("expected big-endian, got %v", r.ByteOrder())
	}
}

func TestReaderHeaderBadSignature(t *testing.T) {
	b := []byte{0x04, 0x0B}
	b = append(b, "notavalidsig"[:11]...)
	b = append(b, 0x81, 0xE8, 0x03)
	if _, err := ts.NewReaderFromBytes(b); err == nil {
		t.Fatal("expected error for unrecognized signature")
	}
}

func TestReaderHeaderUnsupportedVersion(t *testing.T) {
	b := []byte{0x03, 0x0B}
	b = append(b, "streamtyped"...)
	b = append(b, 0x81, 0xE8, 0x03)
	if _, err := ts.NewReaderFromBytes(b); err == nil {
		t.Fatal("expected error for unsupported streamer version")
	}
}

// TestReaderIntEncodings exercises the generic integer encoding rule: head
// bytes outside [-128,-111] carry their value literally, INTEGER_2/INTEGER_4
// select a following 2- or 4-byte payload.
func TestReaderIntEncodings(t *testing.T) {
	tests := []struct {
		name string
		enc  byte
		body []byte
		want int64
	}{
		{"literal", 0x00, nil, 0},
		{"literal-small", 0x05, nil, 5},
		{"int16", 0x81, []byte{0xE8, 0x03}, 1000},
		{"int32", 0x82, []byte{0x00, 0x00, 0x01, 0x00}, 65536},
	}
	for _, tc := range tests {
		b := header(true)
		b = append(b, 0x84, 0x01, 0x69)
		b = append(b, tc.enc)
		b = append(b, tc.body...)
		r, err := ts.NewReaderFromBytes(b)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		drainToInt(t, tc.name, r, tc.want)
		r.Close()
	}
}

func drainToInt(t *testing.T, name string, r *ts.Reader, want int64) {
	t.Helper()
	for {
		ev, err := r.Next()
		if err != nil {
			t.Fatalf("%s: unexpected error draining events: %v", name, err)
		}
		if iv, ok := ev.(ts.IntEvent); ok {
			if int64(iv) != want {
				t.Errorf("%s: got %d, want %d", name, int64(iv), want)
			}
			return
		}
	}
}

// TestReaderInvalidBoolean exercises §8 scenario (f): a B-encoded byte other
// than 0 or 1 is rejected.
func TestReaderInvalidBoolean(t *testing.T) {
	b := header(true)
	b = append(b, 0x84, 0x01, 0x42, 0x02)
	r, err := ts.NewReaderFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if _, err := consumeAll(r); err == nil {
		t.Fatal("expected error for out-of-range boolean byte")
	}
}

// TestReaderCStringWithNUL exercises the other half of scenario (f): a C
// string containing a zero byte is rejected.
func TestReaderCStringWithNUL(t *testing.T) {
	b := header(true)
	b = append(b, 0x84, 0x01, 0x2A)
	b = append(b, 0x84, 0x84, 0x03)
	b = append(b, 'a', 0x00, 'b')
	r, err := ts.NewReaderFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if _, err := consumeAll(r); err == nil {
		t.Fatal("expected error for NUL byte in C string")
	}
}

func consumeAll(r *ts.Reader) ([]ts.Event, error) {
	var evs []ts.Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return evs, nil
		}
		if err != nil {
			return evs, err
		}
		evs = append(evs, ev)
	}
}

func TestReaderRejectsTrailingGarbage(t *testing.T) {
	b := header(true)
	b = append(b, 0x84, 0x01, 0x69, 0x05)
	b = append(b, 0xFF)
	r, err := ts.NewReaderFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if _, err := consumeAll(r); err == nil {
		t.Fatal("expected error reading trailing malformed group")
	}
}
