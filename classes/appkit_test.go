package classes_test

import (
	"testing"

	ts "github.com/dgelessus-go/typedstream"
	"github.com/dgelessus-go/typedstream/classes"
)

// calibratedWhiteColorBytes is a literal typedstream encoding of an archived
// NSColor, version 0, extending NSObject version 0, holding a calibrated
// white/alpha pair (white=1.0, alpha=0.5).
func calibratedWhiteColorBytes() []byte {
	var b []byte
	b = append(b, 0x04, 0x0B)
	b = append(b, "streamtyped"...)
	b = append(b, 0x81, 0xE8, 0x03)
	b = append(b, 0x84, 0x01, 0x40)
	b = append(b, 0x84)
	b = append(b, 0x84, 0x84, 0x07)
	b = append(b, "NSColor"...)
	b = append(b, 0x00)
	b = append(b, 0x84, 0x84, 0x08)
	b = append(b, "NSObject"...)
	b = append(b, 0x00)
	b = append(b, 0x85)
	b = append(b, 0x84, 0x01, 0x63, 0x03)
	b = append(b, 0x84, 0x02)
	b = append(b, "ff"...)
	b = append(b, 0x83, 0x00, 0x00, 0x80, 0x3F)
	b = append(b, 0x83, 0x00, 0x00, 0x00, 0x3F)
	b = append(b, 0x86)
	return b
}

func TestDecodeCalibratedWhiteColor(t *testing.T) {
	u, err := ts.NewUnarchiverFromBytes(calibratedWhiteColorBytes())
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
	color, ok := known.Value.(*classes.NSColor)
	if !ok {
		t.Fatalf("expected *NSColor, got %T", known.Value)
	}
	if color.Kind != classes.NSColorCalibratedWA {
		t.Fatalf("expected NSColorCalibratedWA, got %v", color.Kind)
	}
	wa, ok := color.Value.(classes.NSColorWA)
	if !ok {
		t.Fatalf("expected NSColorWA, got %T", color.Value)
	}
	if wa.White != 1.0 || wa.Alpha != 0.5 {
		t.Errorf("expected white=1.0 alpha=0.5, got %+v", wa)
	}
}
