package classes_test

import (
	"testing"

	ts "github.com/dgelessus-go/typedstream"
	"github.com/dgelessus-go/typedstream/classes"
)

// emptyListV1Bytes is a literal typedstream encoding of an archived List,
// version 1, extending Object version 0, whose sole contributed field is an
// element count of 0 (so the element array is omitted entirely on the wire).
func emptyListV1Bytes() []byte {
	var b []byte
	b = append(b, 0x04, 0x0B)
	b = append(b, "streamtyped"...)
	b = append(b, 0x81, 0xE8, 0x03)
	b = append(b, 0x84, 0x01, 0x40)
	b = append(b, 0x84)
	b = append(b, 0x84, 0x84, 0x04)
	b = append(b, "List"...)
	b = append(b, 0x01)
	b = append(b, 0x84, 0x84, 0x06)
	b = append(b, "Object"...)
	b = append(b, 0x00)
	b = append(b, 0x85)
	b = append(b, 0x84, 0x01, 0x69, 0x00)
	b = append(b, 0x86)
	return b
}

func TestDecodeEmptyListV1(t *testing.T) {
	u, err := ts.NewUnarchiverFromBytes(emptyListV1Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := u.DecodeSingleRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	known, ok := root.(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", root)
	}
	list, ok := known.Value.(*classes.List)
	if !ok {
		t.Fatalf("expected *List, got %T", known.Value)
	}
	if list.Elements != nil {
		t.Errorf("expected nil Elements for an empty list, got %v", list.Elements)
	}
}

// twoElementListV1Bytes is a literal typedstream encoding of an archived
// List, version 1, extending Object version 0, whose element count is 2: a
// nil element followed by a literal NSString(1):NSObject(0) holding "hi".
// The elements are carried on the wire as a single compound '[2@]'-encoded
// typed-value group (BeginArray/elements/EndArray), not as two separate '@'
// groups, matching Unarchiver.DecodeArray's shape.
func twoElementListV1Bytes() []byte {
	var b []byte
	b = append(b, 0x04, 0x0B)
	b = append(b, "streamtyped"...)
	b = append(b, 0x81, 0xE8, 0x03)
	b = append(b, 0x84, 0x01, 0x40)
	b = append(b, 0x84)
	b = append(b, 0x84, 0x84, 0x04)
	b = append(b, "List"...)
	b = append(b, 0x01)
	b = append(b, 0x84, 0x84, 0x06)
	b = append(b, "Object"...)
	b = append(b, 0x00)
	b = append(b, 0x85)
	b = append(b, 0x84, 0x01, 0x69, 0x02)
	b = append(b, 0x84, 0x04)
	b = append(b, "[2@]"...)
	b = append(b, 0x85) // element 0: nil
	b = append(b, 0x84) // element 1: literal object begin
	b = append(b, 0x84, 0x84, 0x08)
	b = append(b, "NSString"...)
	b = append(b, 0x01)
	b = append(b, 0x84, 0x84, 0x08)
	b = append(b, "NSObject"...)
	b = append(b, 0x00)
	b = append(b, 0x85)
	b = append(b, 0x84, 0x01, 0x2B, 0x02)
	b = append(b, "hi"...)
	b = append(b, 0x86) // end element 1
	b = append(b, 0x86) // end List object
	return b
}

func TestDecodeTwoElementListV1(t *testing.T) {
	u, err := ts.NewUnarchiverFromBytes(twoElementListV1Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := u.DecodeSingleRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	known, ok := root.(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", root)
	}
	list, ok := known.Value.(*classes.List)
	if !ok {
		t.Fatalf("expected *List, got %T", known.Value)
	}
	if len(list.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d: %v", len(list.Elements), list.Elements)
	}
	if list.Elements[0] != nil {
		t.Errorf("expected element 0 to be nil, got %v", list.Elements[0])
	}
	second, ok := list.Elements[1].(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected element 1 to be *KnownInstance, got %T", list.Elements[1])
	}
	str, ok := second.Value.(*classes.NSString)
	if !ok {
		t.Fatalf("expected element 1 to be *NSString, got %T", second.Value)
	}
	if str.Value != "hi" {
		t.Errorf("expected %q, got %q", "hi", str.Value)
	}
}
