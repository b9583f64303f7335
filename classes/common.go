package classes

import (
	"fmt"

	ts "github.com/dgelessus-go/typedstream"
)

// asInt64 asserts v (as produced by the unarchiver for an integer-encoded
// field) is an int64.
func asInt64(v any) (int64, error) {
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("classes: expected integer value, got %T", v)
	}
	return n, nil
}

func asBytes(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("classes: expected byte-string value, got %T", v)
	}
	return b, nil
}

func boolFromChar(v any) (bool, error) {
	n, err := asInt64(v)
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("classes: unexpected value for boolean: %d", n)
	}
}

// nsStringValue unwraps v (the result of decoding an NSString-or-subclass
// field) to its Go string content. A nil v yields "" with no error, matching
// fields that are optional on the wire.
func nsStringValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, _ := ts.AsKnown(v)
	hs, ok := raw.(hasNSString)
	if !ok {
		return "", fmt.Errorf("classes: expected NSString, got %T", raw)
	}
	return hs.nsstring().Value, nil
}

func nsArrayElements(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := ts.AsKnown(v)
	if !ok {
		return nil, fmt.Errorf("classes: expected NSArray, got unregistered class")
	}
	ha, ok := raw.(hasNSArray)
	if !ok {
		return nil, fmt.Errorf("classes: expected NSArray, got %T", raw)
	}
	return ha.nsarray().Elements, nil
}

func nsSetElements(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	raw, _ := ts.AsKnown(v)
	hs, ok := raw.(hasNSSet)
	if !ok {
		return nil, fmt.Errorf("classes: expected NSSet, got %T", raw)
	}
	return hs.nsset().Elements, nil
}
