package classes_test

import (
	"testing"

	ts "github.com/dgelessus-go/typedstream"
	"github.com/dgelessus-go/typedstream/classes"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// minimalNSStringBytes is the literal byte-for-byte typedstream encoding of
// an archived NSString, version 1, extending NSObject version 0, whose sole
// contributed field is the unshared string "string value".
func minimalNSStringBytes() []byte {
	var b []byte
	b = append(b, 0x04, 0x0B)
	b = append(b, "streamtyped"...)
	b = append(b, 0x81, 0xE8, 0x03)
	b = append(b, 0x84, 0x01, 0x40)
	b = append(b, 0x84, 0x84, 0x84, 0x08)
	b = append(b, "NSString"...)
	b = append(b, 0x01)
	b = append(b, 0x84, 0x84, 0x08)
	b = append(b, "NSObject"...)
	b = append(b, 0x00)
	b = append(b, 0x85, 0x84, 0x01, 0x2B, 0x0C)
	b = append(b, "string value"...)
	b = append(b, 0x86)
	return b
}

func TestDecodeMinimalNSString(t *testing.T) {
	u, err := ts.NewUnarchiverFromBytes(minimalNSStringBytes())
	assertNoError(t, err)

	root, err := u.DecodeSingleRoot()
	assertNoError(t, err)

	known, ok := root.(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", root)
	}
	if known.Class.String() != "NSString(1) : NSObject(0)" {
		t.Errorf("unexpected class chain: %s", known.Class.String())
	}

	str, ok := known.Value.(*classes.NSString)
	if !ok {
		t.Fatalf("expected *NSString, got %T", known.Value)
	}
	if str.Value != "string value" {
		t.Errorf("expected %q, got %q", "string value", str.Value)
	}
}

func TestDecodeMinimalNSStringEventSequence(t *testing.T) {
	r, err := ts.NewReaderFromBytes(minimalNSStringBytes())
	assertNoError(t, err)
	defer r.Close()

	var tags []string
	for {
		ev, err := r.Next()
		if err != nil {
			break
		}
		tags = append(tags, eventTag(ev))
	}

	expected := []string{
		"begin_typed_values", "begin_object",
		"single_class", "single_class", "nil",
		"begin_typed_values", "bytes", "end_typed_values",
		"end_object", "end_typed_values",
	}
	if len(tags) != len(expected) {
		t.Fatalf("expected %d events, got %d: %v", len(expected), len(tags), tags)
	}
	for i, want := range expected {
		if tags[i] != want {
			t.Errorf("event %d: expected %q, got %q", i, want, tags[i])
		}
	}
}

func eventTag(ev ts.Event) string {
	switch ev.(type) {
	case ts.IntEvent:
		return "int"
	case ts.FloatEvent:
		return "float"
	case ts.BytesEvent:
		return "bytes"
	case ts.NilEvent:
		return "nil"
	case ts.ReferenceEvent:
		return "reference"
	case ts.CStringEvent:
		return "cstring"
	case ts.AtomEvent:
		return "atom"
	case ts.SelectorEvent:
		return "selector"
	case ts.SingleClassEvent:
		return "single_class"
	case ts.BeginObjectEvent:
		return "begin_object"
	case ts.EndObjectEvent:
		return "end_object"
	case ts.ByteArrayEvent:
		return "byte_array"
	case ts.BeginArrayEvent:
		return "begin_array"
	case ts.EndArrayEvent:
		return "end_array"
	case ts.BeginStructEvent:
		return "begin_struct"
	case ts.EndStructEvent:
		return "end_struct"
	case ts.BeginTypedValuesEvent:
		return "begin_typed_values"
	case ts.EndTypedValuesEvent:
		return "end_typed_values"
	case ts.SkipEvent:
		return "skip"
	default:
		return "unknown"
	}
}
