package prettyprint_test

import (
	"strings"
	"testing"

	ts "github.com/dgelessus-go/typedstream"
	"github.com/dgelessus-go/typedstream/prettyprint"
)

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, s)
	}
}

func TestStringPrimitives(t *testing.T) {
	assertContains(t, prettyprint.String(nil), "nil")
	assertContains(t, prettyprint.String(int64(42)), "42")
	assertContains(t, prettyprint.String(3.5), "3.5")
	assertContains(t, prettyprint.String("hello"), `"hello"`)
	assertContains(t, prettyprint.String([]byte("bytes")), `"bytes"`)
}

func TestStringTypedGroup(t *testing.T) {
	g := &ts.TypedGroup{Encodings: []string{"i"}, Values: []any{int64(7)}}
	out := prettyprint.String(g)
	assertContains(t, out, "(i)")
	assertContains(t, out, "7")
}

func TestStringKnownInstance(t *testing.T) {
	class := &ts.Class{Name: []byte("NSString"), Version: 1}
	type fakeString struct{ Value string }
	inst := &ts.KnownInstance{Class: class, Value: &fakeString{Value: "hi"}}
	out := prettyprint.String(inst)
	assertContains(t, out, "NSString(1)")
	assertContains(t, out, `"hi"`)
}

func TestStringCircularReference(t *testing.T) {
	type node struct {
		Name string
		Next *node
	}
	a := &node{Name: "a"}
	a.Next = a

	out := prettyprint.String(a)
	assertContains(t, out, "#1")
	assertContains(t, out, "<ref #1>")
}

func TestStringArray(t *testing.T) {
	a := &ts.Array{ElementEncoding: "i", Values: []any{int64(1), int64(2)}}
	out := prettyprint.String(a)
	assertContains(t, out, "[2]i")
	assertContains(t, out, "1")
	assertContains(t, out, "2")
}

func TestStringByteArray(t *testing.T) {
	a := &ts.Array{ElementEncoding: "c", Bytes: []byte("ab")}
	out := prettyprint.String(a)
	assertContains(t, out, `"ab"`)
}
