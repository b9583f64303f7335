package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ts "github.com/dgelessus-go/typedstream"
)

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Dump the raw event stream, one event per line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadedConfig(cmd); err != nil {
			return &runError{err}
		}

		src, closeSrc, err := openArg(args)
		if err != nil {
			return &runError{err}
		}
		defer closeSrc()

		r, err := ts.NewReader(src)
		if err != nil {
			return &runError{err}
		}
		defer r.Close()

		if err := dumpEvents(cmd.OutOrStdout(), r); err != nil {
			return &runError{err}
		}
		return nil
	},
}

func openArg(args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// dumpEvents reads events from r to EOF, printing one per line and indenting
// between Begin*/End* pairs, annotating each newly assigned shared-object
// table slot (classes, C strings, and literal objects, which share one
// insertion-ordered counter) with its reference number.
func dumpEvents(w io.Writer, r *ts.Reader) error {
	depth := 0
	nextRef := 0

	indentStr := func() string { return strings.Repeat("  ", depth) }

	for {
		ev, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch ev.(type) {
		case ts.EndObjectEvent, ts.EndArrayEvent, ts.EndStructEvent, ts.EndTypedValuesEvent:
			depth--
		}

		line := formatEvent(ev)

		switch ev.(type) {
		case ts.BeginObjectEvent, ts.SingleClassEvent, ts.CStringEvent:
			fmt.Fprintf(w, "%s%s  ; #%d\n", indentStr(), line, nextRef)
			nextRef++
		default:
			fmt.Fprintf(w, "%s%s\n", indentStr(), line)
		}

		switch ev.(type) {
		case ts.BeginObjectEvent, ts.BeginArrayEvent, ts.BeginStructEvent, ts.BeginTypedValuesEvent:
			depth++
		}
	}
}

func formatEvent(ev ts.Event) string {
	switch e := ev.(type) {
	case ts.IntEvent:
		return fmt.Sprintf("Int(%d)", int64(e))
	case ts.FloatEvent:
		return fmt.Sprintf("Float(%g)", float64(e))
	case ts.BytesEvent:
		return fmt.Sprintf("Bytes(%q)", string(e))
	case ts.NilEvent:
		return "Nil"
	case ts.ReferenceEvent:
		return fmt.Sprintf("Reference(%s, #%d)", e.Kind, e.Index)
	case ts.CStringEvent:
		return fmt.Sprintf("CString(%q)", string(e))
	case ts.AtomEvent:
		return fmt.Sprintf("Atom(%q)", string(e))
	case ts.SelectorEvent:
		return fmt.Sprintf("Selector(%q)", string(e))
	case ts.SingleClassEvent:
		return fmt.Sprintf("SingleClass(%q, %d)", string(e.Name), e.Version)
	case ts.BeginObjectEvent:
		return "BeginObject"
	case ts.EndObjectEvent:
		return "EndObject"
	case ts.ByteArrayEvent:
		return fmt.Sprintf("ByteArray(%q)", string(e))
	case ts.BeginArrayEvent:
		return fmt.Sprintf("BeginArray(%d)", e.Length)
	case ts.EndArrayEvent:
		return "EndArray"
	case ts.BeginStructEvent:
		return fmt.Sprintf("BeginStruct(%q)", e.Name)
	case ts.EndStructEvent:
		return "EndStruct"
	case ts.BeginTypedValuesEvent:
		return fmt.Sprintf("BeginTypedValues(%s)", strings.Join(e.Encodings, ","))
	case ts.EndTypedValuesEvent:
		return "EndTypedValues"
	case ts.SkipEvent:
		return "Skip"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
