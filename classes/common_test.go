package classes

import "testing"

func TestAsInt64(t *testing.T) {
	n, err := asInt64(int64(42))
	if err != nil || n != 42 {
		t.Fatalf("asInt64(42): got (%d, %v)", n, err)
	}
	if _, err := asInt64("not an int"); err == nil {
		t.Fatalf("expected error for non-int64 value")
	}
}

func TestAsBytes(t *testing.T) {
	b, err := asBytes([]byte("hi"))
	if err != nil || string(b) != "hi" {
		t.Fatalf("asBytes: got (%q, %v)", b, err)
	}
	if b, err := asBytes(nil); err != nil || b != nil {
		t.Fatalf("asBytes(nil): expected (nil, nil), got (%v, %v)", b, err)
	}
	if _, err := asBytes(42); err == nil {
		t.Fatalf("expected error for non-byte-slice value")
	}
}

func TestBoolFromChar(t *testing.T) {
	for _, tc := range []struct {
		in   int64
		want bool
	}{{0, false}, {1, true}} {
		got, err := boolFromChar(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("boolFromChar(%d): got (%v, %v)", tc.in, got, err)
		}
	}
	if _, err := boolFromChar(int64(2)); err == nil {
		t.Fatalf("expected error for boolean value outside {0,1}")
	}
}

func TestNSStringValueNil(t *testing.T) {
	s, err := nsStringValue(nil)
	if err != nil || s != "" {
		t.Fatalf("nsStringValue(nil): got (%q, %v)", s, err)
	}
}

func TestNSStringValueDirect(t *testing.T) {
	s, err := nsStringValue(&NSString{Value: "hello"})
	if err != nil || s != "hello" {
		t.Fatalf("nsStringValue: got (%q, %v)", s, err)
	}
}

func TestNSArrayElementsNil(t *testing.T) {
	elems, err := nsArrayElements(nil)
	if err != nil || elems != nil {
		t.Fatalf("nsArrayElements(nil): got (%v, %v)", elems, err)
	}
}

func TestNSSetElementsDirect(t *testing.T) {
	set := &NSSet{Elements: []any{int64(1), int64(2)}}
	elems, err := nsSetElements(set)
	if err != nil || len(elems) != 2 {
		t.Fatalf("nsSetElements: got (%v, %v)", elems, err)
	}
}

func TestAsFloat32(t *testing.T) {
	f, err := asFloat32(float64(1.5))
	if err != nil || f != 1.5 {
		t.Fatalf("asFloat32: got (%v, %v)", f, err)
	}
	if _, err := asFloat32("nope"); err == nil {
		t.Fatalf("expected error for non-float64 value")
	}
}

func TestAsFloat64(t *testing.T) {
	f, err := asFloat64(float64(2.25))
	if err != nil || f != 2.25 {
		t.Fatalf("asFloat64: got (%v, %v)", f, err)
	}
}
