package typedstream_test

import (
	"testing"

	ts "github.com/dgelessus-go/typedstream"
)

// testNode is a throwaway registered class used only to exercise the
// unarchiver's object-table and backreference handling directly, without
// depending on the classes catalog subpackage.
type testNode struct {
	Name string
	Next any
}

func init() {
	ts.RegisterClass(ts.ClassDescriptor{
		Name:        "TestNode",
		Versions:    []int32{0},
		NewInstance: func() any { return &testNode{} },
		Contribute: func(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
			n := self.Value.(*testNode)
			vals, err := u.DecodeValuesOfTypes("+", "@")
			if err != nil {
				return err
			}
			nameBytes, _ := vals[0].([]byte)
			n.Name = string(nameBytes)
			n.Next = vals[1]
			return nil
		},
	})
}

func testNodeClassBytes() []byte {
	var b []byte
	b = append(b, 0x84, 0x84, byte(len("TestNode")))
	b = append(b, "TestNode"...)
	b = append(b, 0x00)
	return b
}

// TestDecodeObjectBackreference exercises §8 scenario (d): a class stored
// literally once, then referenced a second time, must resolve to the same
// Class pointer both times.
func TestDecodeObjectBackreference(t *testing.T) {
	var b []byte
	b = append(b, header(true)...)

	// Top-level group: two '@' values.
	b = append(b, 0x84, 0x02, '@', '@')

	// First object: literal TestNode(0), name "a", next = nil. The object's
	// own placeholder slot is reserved at table index 0 before its class
	// chain is read, so the TestNode class descriptor lands at index 1.
	b = append(b, 0x84)
	b = append(b, testNodeClassBytes()...)
	b = append(b, 0x85) // nil terminates class chain
	b = append(b, 0x84, 0x02, '+', '@')
	b = append(b, 0x01, 'a')
	b = append(b, 0x85) // next = nil
	b = append(b, 0x86) // end first object

	// Second object: literal TestNode reused via class backreference, name
	// "b", next = nil. The class reference number is firstReferenceNumber+1
	// (-109), biased from the 1st table slot (the class, not the object).
	b = append(b, 0x84)
	b = append(b, 0x93)
	b = append(b, 0x84, 0x02, '+', '@')
	b = append(b, 0x01, 'b')
	b = append(b, 0x85)
	b = append(b, 0x86)

	u, err := ts.NewUnarchiverFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	groups, err := u.DecodeAll()
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Values) != 2 {
		t.Fatalf("expected one group of two values, got %+v", groups)
	}

	first, ok := groups[0].Values[0].(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", groups[0].Values[0])
	}
	second, ok := groups[0].Values[1].(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", groups[0].Values[1])
	}
	if first.Class != second.Class {
		t.Errorf("expected both objects to share the same Class pointer")
	}

	n1 := first.Value.(*testNode)
	n2 := second.Value.(*testNode)
	if n1.Name != "a" || n2.Name != "b" {
		t.Errorf("expected names a/b, got %q/%q", n1.Name, n2.Name)
	}
}

// TestDecodeCircularReference exercises §8 scenario (e): an object whose
// field points back to itself via an object reference must decode without
// infinite recursion, with the field equal to the object by identity.
func TestDecodeCircularReference(t *testing.T) {
	var b []byte
	b = append(b, header(true)...)
	b = append(b, 0x84, 0x01, '@')

	b = append(b, 0x84)
	b = append(b, testNodeClassBytes()...)
	b = append(b, 0x85)
	b = append(b, 0x84, 0x02, '+', '@')
	b = append(b, 0x01, 'r')

	// next = object reference to the object currently being constructed.
	// Its placeholder slot was reserved before the class chain was read, so
	// its table index is 0, biased to firstReferenceNumber (-110) = 0x92.
	b = append(b, 0x92)
	b = append(b, 0x86)

	u, err := ts.NewUnarchiverFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, err := u.DecodeSingleRoot()
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	known, ok := root.(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected *KnownInstance, got %T", root)
	}
	node := known.Value.(*testNode)
	next, ok := node.Next.(*ts.KnownInstance)
	if !ok {
		t.Fatalf("expected self-reference to be *KnownInstance, got %T", node.Next)
	}
	if next != known {
		t.Errorf("expected self-reference to be identical to the root instance")
	}
}
