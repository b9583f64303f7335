// Package prettyprint renders decoded typedstream values as indented,
// human-readable multiline text: the generic/partial-known wrapper types,
// the built-in class/struct catalog, and raw Go primitives alike.
//
// Cycles are handled with an explicit visited-pointer set threaded through
// the recursion, so a circularly-referencing object graph renders (with a
// backreference token at the second visit) instead of recursing forever.
package prettyprint

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	ts "github.com/dgelessus-go/typedstream"
)

// String renders v as a multiline, indented string.
func String(v any) string {
	p := &printer{seen: map[uintptr]int{}}
	var b strings.Builder
	p.render(&b, v, 0)
	return b.String()
}

type printer struct {
	seen map[uintptr]int
	next int
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// pointerOf returns the pointer value backing v's reflect.Value, if v is
// itself a pointer, and whether v is a pointer at all.
func pointerOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return 0, false
	}
	return rv.Pointer(), true
}

// markVisit records ptr as visited and returns the sequence number assigned
// to it along with whether this is the first visit.
func (p *printer) markVisit(ptr uintptr) (seq int, first bool) {
	if seq, ok := p.seen[ptr]; ok {
		return seq, false
	}
	p.next++
	p.seen[ptr] = p.next
	return p.next, true
}

func (p *printer) render(b *strings.Builder, v any, depth int) {
	if v == nil {
		b.WriteString("nil")
		return
	}

	if ptr, isPtr := pointerOf(v); isPtr {
		seq, first := p.markVisit(ptr)
		if !first {
			fmt.Fprintf(b, "<ref #%d>", seq)
			return
		}
		fmt.Fprintf(b, "#%d ", seq)
	}

	switch t := v.(type) {
	case *ts.KnownInstance:
		fmt.Fprintf(b, "%s {\n", t.Class.String())
		p.render(b, t.Value, depth+1)
		b.WriteString("\n")
		indent(b, depth)
		b.WriteString("}")
	case *ts.GenericObject:
		fmt.Fprintf(b, "<generic %s>", t.Wire.String())
		if t.Super != nil {
			b.WriteString(" super=")
			p.render(b, t.Super, depth)
		}
		if len(t.Contents) > 0 {
			b.WriteString(" {\n")
			for _, g := range t.Contents {
				indent(b, depth+1)
				p.renderTypedGroup(b, g, depth+1)
				b.WriteString("\n")
			}
			indent(b, depth)
			b.WriteString("}")
		}
	case *ts.GenericStruct:
		fmt.Fprintf(b, "{%s}", t.Name)
		if len(t.Values) > 0 {
			b.WriteString(" {\n")
			for i, fv := range t.Values {
				indent(b, depth+1)
				fmt.Fprintf(b, "%s: ", t.Fields[i])
				p.render(b, fv, depth+1)
				b.WriteString("\n")
			}
			indent(b, depth)
			b.WriteString("}")
		}
	case *ts.TypedGroup:
		p.renderTypedGroup(b, t, depth)
	case *ts.Array:
		p.renderArray(b, t, depth)
	case *ts.Class:
		b.WriteString(t.String())
	case []byte:
		fmt.Fprintf(b, "%q", string(t))
	case string:
		fmt.Fprintf(b, "%q", t)
	case int64:
		fmt.Fprintf(b, "%d", t)
	case float64:
		fmt.Fprintf(b, "%g", t)
	case bool:
		fmt.Fprintf(b, "%v", t)
	default:
		p.renderReflect(b, v, depth)
	}
}

func (p *printer) renderTypedGroup(b *strings.Builder, g *ts.TypedGroup, depth int) {
	fmt.Fprintf(b, "(%s) {\n", strings.Join(g.Encodings, ","))
	for i, v := range g.Values {
		indent(b, depth+1)
		fmt.Fprintf(b, "%s: ", g.Encodings[i])
		p.render(b, v, depth+1)
		b.WriteString("\n")
	}
	indent(b, depth)
	b.WriteString("}")
}

func (p *printer) renderArray(b *strings.Builder, a *ts.Array, depth int) {
	if a.Bytes != nil {
		fmt.Fprintf(b, "[%d]%s %q", len(a.Bytes), a.ElementEncoding, string(a.Bytes))
		return
	}
	fmt.Fprintf(b, "[%d]%s {\n", len(a.Values), a.ElementEncoding)
	for _, v := range a.Values {
		indent(b, depth+1)
		p.render(b, v, depth+1)
		b.WriteString("\n")
	}
	indent(b, depth)
	b.WriteString("}")
}

// renderReflect handles the built-in class/struct catalog types (plain Go
// structs, slices, and maps) that have no special-cased rendering above:
// each field is printed on its own indented line.
func (p *printer) renderReflect(b *strings.Builder, v any, depth int) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		if t.NumField() == 0 {
			fmt.Fprintf(b, "%s{}", t.Name())
			return
		}
		fmt.Fprintf(b, "%s {\n", t.Name())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			indent(b, depth+1)
			fmt.Fprintf(b, "%s: ", f.Name)
			p.render(b, rv.Field(i).Interface(), depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i := 0; i < rv.Len(); i++ {
			indent(b, depth+1)
			p.render(b, rv.Index(i).Interface(), depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("]")
	case reflect.Map:
		keys := rv.MapKeys()
		if len(keys) == 0 {
			b.WriteString("{}")
			return
		}
		strs := make([]string, len(keys))
		for i, k := range keys {
			strs[i] = fmt.Sprintf("%v", k.Interface())
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return strs[order[i]] < strs[order[j]] })
		b.WriteString("{\n")
		for _, idx := range order {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s: ", strs[idx])
			p.render(b, rv.MapIndex(keys[idx]).Interface(), depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
